package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

// The three starred repositories share their query shape; only the target
// column differs.

func applyStarredFilters(sq SelectBuilder, table string, p model.StarredFindParameters) SelectBuilder {
	if p.User.IsValid() {
		sq = sq.Where(Eq{table + ".user_id": int64(p.User)})
	}
	if p.Backend != nil {
		sq = sq.Where(Eq{table + ".backend": int(*p.Backend)})
	}
	if p.State != nil {
		sq = sq.Where(Eq{table + ".sync_state": int(*p.State)})
	}
	return sq.OrderBy(table + ".id")
}

type starredArtistRepository struct {
	sqlRepository
}

func newStarredArtistRepository(ctx context.Context, s *SQLStore) model.StarredArtistRepository {
	return &starredArtistRepository{s.baseRepo(ctx, "starred_artist")}
}

func (r *starredArtistRepository) Get(id model.StarredArtistID) (*model.StarredArtist, error) {
	var res model.StarredArtist
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *starredArtistRepository) GetStar(userID model.UserID, artistID model.ArtistID, backend model.FeedbackBackend) (*model.StarredArtist, error) {
	var res model.StarredArtist
	err := r.queryOne(r.newSelect().Where(Eq{
		"user_id":   int64(userID),
		"artist_id": int64(artistID),
		"backend":   int(backend),
	}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *starredArtistRepository) Put(s *model.StarredArtist) error {
	id, err := r.put(int64(s.ID), s)
	if err != nil {
		return err
	}
	s.ID = model.StarredArtistID(id)
	return nil
}

func (r *starredArtistRepository) Delete(id model.StarredArtistID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *starredArtistRepository) SetState(id model.StarredArtistID, state model.SyncState) error {
	_, err := r.executeSQL(Update(r.tableName).Set("sync_state", int(state)).Where(Eq{"id": int64(id)}))
	return err
}

func (r *starredArtistRepository) FindIDs(p model.StarredFindParameters) (model.RangeResults[model.StarredArtistID], error) {
	sq := applyStarredFilters(r.newSelect(r.tableName+".id"), r.tableName, p)
	return queryIDPage[model.StarredArtistID](r.sqlRepository, sq, p.Range)
}

type starredReleaseRepository struct {
	sqlRepository
}

func newStarredReleaseRepository(ctx context.Context, s *SQLStore) model.StarredReleaseRepository {
	return &starredReleaseRepository{s.baseRepo(ctx, "starred_release")}
}

func (r *starredReleaseRepository) Get(id model.StarredReleaseID) (*model.StarredRelease, error) {
	var res model.StarredRelease
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *starredReleaseRepository) GetStar(userID model.UserID, releaseID model.ReleaseID, backend model.FeedbackBackend) (*model.StarredRelease, error) {
	var res model.StarredRelease
	err := r.queryOne(r.newSelect().Where(Eq{
		"user_id":    int64(userID),
		"release_id": int64(releaseID),
		"backend":    int(backend),
	}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *starredReleaseRepository) Put(s *model.StarredRelease) error {
	id, err := r.put(int64(s.ID), s)
	if err != nil {
		return err
	}
	s.ID = model.StarredReleaseID(id)
	return nil
}

func (r *starredReleaseRepository) Delete(id model.StarredReleaseID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *starredReleaseRepository) SetState(id model.StarredReleaseID, state model.SyncState) error {
	_, err := r.executeSQL(Update(r.tableName).Set("sync_state", int(state)).Where(Eq{"id": int64(id)}))
	return err
}

func (r *starredReleaseRepository) FindIDs(p model.StarredFindParameters) (model.RangeResults[model.StarredReleaseID], error) {
	sq := applyStarredFilters(r.newSelect(r.tableName+".id"), r.tableName, p)
	return queryIDPage[model.StarredReleaseID](r.sqlRepository, sq, p.Range)
}

type starredTrackRepository struct {
	sqlRepository
}

func newStarredTrackRepository(ctx context.Context, s *SQLStore) model.StarredTrackRepository {
	return &starredTrackRepository{s.baseRepo(ctx, "starred_track")}
}

func (r *starredTrackRepository) Get(id model.StarredTrackID) (*model.StarredTrack, error) {
	var res model.StarredTrack
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *starredTrackRepository) GetStar(userID model.UserID, trackID model.TrackID, backend model.FeedbackBackend) (*model.StarredTrack, error) {
	var res model.StarredTrack
	err := r.queryOne(r.newSelect().Where(Eq{
		"user_id":  int64(userID),
		"track_id": int64(trackID),
		"backend":  int(backend),
	}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *starredTrackRepository) Put(s *model.StarredTrack) error {
	id, err := r.put(int64(s.ID), s)
	if err != nil {
		return err
	}
	s.ID = model.StarredTrackID(id)
	return nil
}

func (r *starredTrackRepository) Delete(id model.StarredTrackID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *starredTrackRepository) SetState(id model.StarredTrackID, state model.SyncState) error {
	_, err := r.executeSQL(Update(r.tableName).Set("sync_state", int(state)).Where(Eq{"id": int64(id)}))
	return err
}

func (r *starredTrackRepository) FindIDs(p model.StarredFindParameters) (model.RangeResults[model.StarredTrackID], error) {
	sq := applyStarredFilters(r.newSelect(r.tableName+".id"), r.tableName, p)
	return queryIDPage[model.StarredTrackID](r.sqlRepository, sq, p.Range)
}

var _ model.StarredArtistRepository = (*starredArtistRepository)(nil)
var _ model.StarredReleaseRepository = (*starredReleaseRepository)(nil)
var _ model.StarredTrackRepository = (*starredTrackRepository)(nil)
