package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type trackArtistLinkRepository struct {
	sqlRepository
}

func newTrackArtistLinkRepository(ctx context.Context, s *SQLStore) model.TrackArtistLinkRepository {
	return &trackArtistLinkRepository{s.baseRepo(ctx, "track_artist_link")}
}

func (r *trackArtistLinkRepository) Get(id model.TrackArtistLinkID) (*model.TrackArtistLink, error) {
	var res model.TrackArtistLink
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackArtistLinkRepository) Put(l *model.TrackArtistLink) error {
	id, err := r.put(int64(l.ID), l)
	if err != nil {
		return err
	}
	l.ID = model.TrackArtistLinkID(id)
	return nil
}

func (r *trackArtistLinkRepository) Delete(id model.TrackArtistLinkID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *trackArtistLinkRepository) GetForTrack(trackID model.TrackID, linkTypes ...model.TrackArtistLinkType) (model.TrackArtistLinks, error) {
	sq := r.newSelect().Where(Eq{"track_id": int64(trackID)})
	if len(linkTypes) > 0 {
		types := make([]int, len(linkTypes))
		for i, t := range linkTypes {
			types[i] = int(t)
		}
		sq = sq.Where(Eq{"type": types})
	}
	sq = sq.OrderBy("id")
	var res model.TrackArtistLinks
	err := r.queryAll(sq, &res)
	return res, err
}

func (r *trackArtistLinkRepository) DeleteForTrack(trackID model.TrackID) error {
	return r.delete(Eq{"track_id": int64(trackID)})
}

var _ model.TrackArtistLinkRepository = (*trackArtistLinkRepository)(nil)
