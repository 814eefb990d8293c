package persistence

import (
	"context"
	"time"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type authTokenRepository struct {
	sqlRepository
}

func newAuthTokenRepository(ctx context.Context, s *SQLStore) model.AuthTokenRepository {
	return &authTokenRepository{s.baseRepo(ctx, "auth_token")}
}

func (r *authTokenRepository) Get(id model.AuthTokenID) (*model.AuthToken, error) {
	var res model.AuthToken
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *authTokenRepository) GetByValue(value string) (*model.AuthToken, error) {
	var res model.AuthToken
	err := r.queryOne(r.newSelect().Where(Eq{"value": value}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *authTokenRepository) GetByUser(userID model.UserID) (model.AuthTokens, error) {
	var res model.AuthTokens
	err := r.queryAll(r.newSelect().Where(Eq{"user_id": int64(userID)}).OrderBy("expiry desc"), &res)
	return res, err
}

func (r *authTokenRepository) Put(t *model.AuthToken) error {
	id, err := r.put(int64(t.ID), t)
	if err != nil {
		return err
	}
	t.ID = model.AuthTokenID(id)
	return nil
}

func (r *authTokenRepository) Delete(id model.AuthTokenID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *authTokenRepository) DeleteByUser(userID model.UserID) error {
	return r.delete(Eq{"user_id": int64(userID)})
}

func (r *authTokenRepository) DeleteExpired(now time.Time) (int64, error) {
	return r.deleteCount(Lt{"expiry": now})
}

var _ model.AuthTokenRepository = (*authTokenRepository)(nil)
