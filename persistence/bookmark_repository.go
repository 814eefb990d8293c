package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type trackBookmarkRepository struct {
	sqlRepository
}

func newTrackBookmarkRepository(ctx context.Context, s *SQLStore) model.TrackBookmarkRepository {
	return &trackBookmarkRepository{s.baseRepo(ctx, "track_bookmark")}
}

func (r *trackBookmarkRepository) Get(id model.TrackBookmarkID) (*model.TrackBookmark, error) {
	var res model.TrackBookmark
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackBookmarkRepository) GetByUserAndTrack(userID model.UserID, trackID model.TrackID) (*model.TrackBookmark, error) {
	var res model.TrackBookmark
	err := r.queryOne(r.newSelect().Where(Eq{
		"user_id":  int64(userID),
		"track_id": int64(trackID),
	}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackBookmarkRepository) GetByUser(userID model.UserID, rng *model.Range) (model.RangeResults[model.TrackBookmark], error) {
	sq := r.newSelect().Where(Eq{"user_id": int64(userID)}).OrderBy("track_bookmark.id")
	return queryPage[model.TrackBookmark](r.sqlRepository, sq, rng)
}

func (r *trackBookmarkRepository) Put(b *model.TrackBookmark) error {
	id, err := r.put(int64(b.ID), b)
	if err != nil {
		return err
	}
	b.ID = model.TrackBookmarkID(id)
	return nil
}

func (r *trackBookmarkRepository) Delete(id model.TrackBookmarkID) error {
	return r.delete(Eq{"id": int64(id)})
}

var _ model.TrackBookmarkRepository = (*trackBookmarkRepository)(nil)
