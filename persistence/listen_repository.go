package persistence

import (
	"context"
	"time"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type listenRepository struct {
	sqlRepository
}

func newListenRepository(ctx context.Context, s *SQLStore) model.ListenRepository {
	return &listenRepository{s.baseRepo(ctx, "listen")}
}

func (r *listenRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *listenRepository) Get(id model.ListenID) (*model.Listen, error) {
	var res model.Listen
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *listenRepository) GetListen(userID model.UserID, trackID model.TrackID, backend model.FeedbackBackend, dateTime time.Time) (*model.Listen, error) {
	var res model.Listen
	err := r.queryOne(r.newSelect().Where(Eq{
		"user_id":   int64(userID),
		"track_id":  int64(trackID),
		"backend":   int(backend),
		"date_time": dateTime,
	}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *listenRepository) GetMostRecent(userID model.UserID, backend model.FeedbackBackend) (*model.Listen, error) {
	var res model.Listen
	sq := r.newSelect().Where(Eq{
		"user_id": int64(userID),
		"backend": int(backend),
	}).OrderBy("date_time desc", "id desc").Limit(1)
	err := r.queryOne(sq, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *listenRepository) Put(l *model.Listen) error {
	id, err := r.put(int64(l.ID), l)
	if err != nil {
		return err
	}
	l.ID = model.ListenID(id)
	return nil
}

func (r *listenRepository) Delete(id model.ListenID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *listenRepository) SetState(id model.ListenID, state model.SyncState) error {
	_, err := r.executeSQL(Update(r.tableName).Set("sync_state", int(state)).Where(Eq{"id": int64(id)}))
	return err
}

func (r *listenRepository) FindIDs(p model.ListenFindParameters) (model.RangeResults[model.ListenID], error) {
	sq := r.newSelect("listen.id")
	if p.User.IsValid() {
		sq = sq.Where(Eq{"user_id": int64(p.User)})
	}
	if p.Backend != nil {
		sq = sq.Where(Eq{"backend": int(*p.Backend)})
	}
	if p.State != nil {
		sq = sq.Where(Eq{"sync_state": int(*p.State)})
	}
	sq = sq.OrderBy("listen.date_time", "listen.id")
	return queryIDPage[model.ListenID](r.sqlRepository, sq, p.Range)
}

func (r *listenRepository) CountByState(userID model.UserID, backend model.FeedbackBackend, state model.SyncState) (int64, error) {
	var res countRow
	err := r.queryOne(Select("count(*) as c").From(r.tableName).Where(Eq{
		"user_id":    int64(userID),
		"backend":    int(backend),
		"sync_state": int(state),
	}), &res)
	return res.C, err
}

var _ model.ListenRepository = (*listenRepository)(nil)
