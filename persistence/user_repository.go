package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type userRepository struct {
	sqlRepository
}

func newUserRepository(ctx context.Context, s *SQLStore) model.UserRepository {
	return &userRepository{s.baseRepo(ctx, "user")}
}

func (r *userRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *userRepository) Get(id model.UserID) (*model.User, error) {
	var res model.User
	err := r.queryOne(r.newSelect().Where(Eq{"user.id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *userRepository) GetByLoginName(loginName string) (*model.User, error) {
	var res model.User
	err := r.queryOne(r.newSelect().Where(Eq{"login_name": loginName}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *userRepository) GetAll(rng *model.Range) (model.RangeResults[model.User], error) {
	return queryPage[model.User](r.sqlRepository, r.newSelect().OrderBy("user.id"), rng)
}

func (r *userRepository) GetDemoUser() (*model.User, error) {
	var res model.User
	err := r.queryOne(r.newSelect().Where(Eq{"type": int(model.UserTypeDemo)}).OrderBy("user.id").Limit(1), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *userRepository) Put(u *model.User) error {
	id, err := r.put(int64(u.ID), u)
	if err != nil {
		return err
	}
	u.ID = model.UserID(id)
	return nil
}

func (r *userRepository) Delete(id model.UserID) error {
	return r.delete(Eq{"id": int64(id)})
}

var _ model.UserRepository = (*userRepository)(nil)
