package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type trackLyricsRepository struct {
	sqlRepository
}

func newTrackLyricsRepository(ctx context.Context, s *SQLStore) model.TrackLyricsRepository {
	return &trackLyricsRepository{s.baseRepo(ctx, "track_lyrics")}
}

func (r *trackLyricsRepository) Get(id model.TrackLyricsID) (*model.TrackLyrics, error) {
	var res model.TrackLyrics
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackLyricsRepository) GetForTrack(trackID model.TrackID) (model.TrackLyricsList, error) {
	var res model.TrackLyricsList
	err := r.queryAll(r.newSelect().Where(Eq{"track_id": int64(trackID)}).OrderBy("id"), &res)
	return res, err
}

func (r *trackLyricsRepository) Put(l *model.TrackLyrics) error {
	id, err := r.put(int64(l.ID), l)
	if err != nil {
		return err
	}
	l.ID = model.TrackLyricsID(id)
	return nil
}

func (r *trackLyricsRepository) Delete(id model.TrackLyricsID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *trackLyricsRepository) DeleteEmbeddedForTrack(trackID model.TrackID) error {
	return r.delete(Eq{"track_id": int64(trackID), "external": false})
}

var _ model.TrackLyricsRepository = (*trackLyricsRepository)(nil)
