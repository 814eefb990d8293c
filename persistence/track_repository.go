package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type trackRepository struct {
	sqlRepository
}

func newTrackRepository(ctx context.Context, s *SQLStore) model.TrackRepository {
	return &trackRepository{s.baseRepo(ctx, "track")}
}

func (r *trackRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *trackRepository) Get(id model.TrackID) (*model.Track, error) {
	var res model.Track
	err := r.queryOne(r.newSelect().Where(Eq{"track.id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackRepository) Exists(id model.TrackID) (bool, error) {
	return r.exists(Eq{"id": int64(id)})
}

func (r *trackRepository) GetByPath(absoluteFilePath string) (*model.Track, error) {
	var res model.Track
	err := r.queryOne(r.newSelect().Where(Eq{"absolute_file_path": absoluteFilePath}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackRepository) GetFileInfo(absoluteFilePath string) (*model.FileInfo, error) {
	var res model.FileInfo
	sel := r.newSelect("id", "file_size", "file_last_write", "scan_version").
		Where(Eq{"absolute_file_path": absoluteFilePath})
	err := r.queryOne(sel, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackRepository) GetByMBID(mbid string) (model.Tracks, error) {
	return r.getByMBIDColumn(mbid, "track_mbid")
}

func (r *trackRepository) GetByRecordingMBID(mbid string) (model.Tracks, error) {
	return r.getByMBIDColumn(mbid, "recording_mbid")
}

func (r *trackRepository) getByMBIDColumn(mbid string, column string) (model.Tracks, error) {
	expr := mbidExpr(mbid, column)
	if expr == nil {
		return nil, nil
	}
	var res model.Tracks
	err := r.queryAll(r.newSelect().Where(expr).OrderBy("track.id"), &res)
	return res, err
}

func (r *trackRepository) Put(t *model.Track) error {
	id, err := r.put(int64(t.ID), t)
	if err != nil {
		return err
	}
	t.ID = model.TrackID(id)
	return nil
}

func (r *trackRepository) Delete(id model.TrackID) error {
	return r.delete(Eq{"id": int64(id)})
}

// applyFilters translates TrackFindParameters into WHERE clauses, one
// optional branch per filter dimension.
func (r *trackRepository) applyFilters(sq SelectBuilder, p model.TrackFindParameters) SelectBuilder {
	if len(p.Clusters) > 0 {
		sq = sq.Where(trackClusterFilter(p.Clusters))
	}
	if len(p.Keywords) > 0 {
		sq = sq.Where(keywordFilter([]string{"track.name"}, p.Keywords))
	}
	if p.Name != "" {
		sq = sq.Where(Eq{"track.name": p.Name})
	}
	if !p.WrittenAfter.IsZero() {
		sq = sq.Where(Gt{"track.file_last_write": p.WrittenAfter})
	}
	if p.StarringUser.IsValid() {
		sq = sq.Where(starredFilter("track.id", "starred_track", "track_id", p.StarringUser, p.FeedbackBackend))
	}
	if p.Artist.IsValid() || p.ArtistName != "" {
		sq = sq.Where(artistLinkFilter("track.id", p.Artist, p.ArtistName, p.LinkTypes))
	}
	if p.NonRelease {
		sq = sq.Where(Eq{"track.release_id": nil})
	}
	if p.Medium.IsValid() {
		sq = sq.Where(Eq{"track.medium_id": int64(p.Medium)})
	}
	if p.Release.IsValid() {
		sq = sq.Where(Eq{"track.release_id": int64(p.Release)})
	}
	if p.ReleaseName != "" {
		sq = sq.Where(Expr("track.release_id IN (SELECT id FROM release WHERE name = ?)", p.ReleaseName))
	}
	if p.TrackList.IsValid() {
		sq = sq.Join("tracklist_entry ON tracklist_entry.track_id = track.id").
			Where(Eq{"tracklist_entry.tracklist_id": int64(p.TrackList)})
	}
	if p.TrackNumber != nil {
		sq = sq.Where(Eq{"track.track_number": *p.TrackNumber})
	}
	if p.Directory.IsValid() {
		sq = sq.Where(Eq{"track.directory_id": int64(p.Directory)})
	}
	if p.FileSize != nil {
		sq = sq.Where(Eq{"track.file_size": *p.FileSize})
	}
	if p.EmbeddedImage.IsValid() {
		sq = sq.Where(Expr("track.id IN (SELECT track_id FROM track_embedded_image_link WHERE track_embedded_image_id = ?)",
			int64(p.EmbeddedImage)))
	}
	if p.Library.IsValid() {
		sq = sq.Where(Eq{"track.media_library_id": int64(p.Library)})
	}
	return r.applySort(sq, p)
}

func (r *trackRepository) applySort(sq SelectBuilder, p model.TrackFindParameters) SelectBuilder {
	switch p.SortMethod {
	case model.TrackSortMethodByName:
		sq = sq.OrderBy("track.name collate nocase", "track.id")
	case model.TrackSortMethodAddedDesc:
		sq = sq.OrderBy("track.file_added desc", "track.id desc")
	case model.TrackSortMethodLastWrittenDesc:
		sq = sq.OrderBy("track.file_last_write desc", "track.id desc")
	case model.TrackSortMethodRandom:
		sq = sq.OrderBy("random()")
	case model.TrackSortMethodTrackList:
		// Requires the tracklist filter; entries order by insertion id.
		sq = sq.OrderBy("tracklist_entry.id")
	case model.TrackSortMethodRelease:
		sq = sq.LeftJoin("medium ON medium.id = track.medium_id").
			OrderBy("medium.position", "track.track_number", "track.id")
	case model.TrackSortMethodDateDescAndRelease:
		sq = sq.LeftJoin("medium ON medium.id = track.medium_id").
			OrderBy("track.date desc", "track.release_id", "medium.position", "track.track_number")
	case model.TrackSortMethodAbsoluteFilePath:
		sq = sq.OrderBy("track.absolute_file_path")
	}
	return sq
}

func (r *trackRepository) Find(p model.TrackFindParameters) (model.RangeResults[model.Track], error) {
	sq := r.applyFilters(r.newSelect(), p)
	return queryPage[model.Track](r.sqlRepository, sq, p.Range)
}

func (r *trackRepository) FindIDs(p model.TrackFindParameters) (model.RangeResults[model.TrackID], error) {
	sq := r.applyFilters(r.newSelect("track.id"), p)
	return queryIDPage[model.TrackID](r.sqlRepository, sq, p.Range)
}

func (r *trackRepository) FindEach(p model.TrackFindParameters, fn func(*model.Track) error) error {
	sq := exactRange(r.applyFilters(r.newSelect(), p), p.Range)
	return visitEach[model.Track](r.sqlRepository, sq, fn)
}

func (r *trackRepository) Search(query string, rng *model.Range) (model.RangeResults[model.Track], error) {
	parsed := ParseTrackSearch(query)
	sq := ApplyTrackSearch(r.newSelect(), parsed).
		OrderBy("track.name collate nocase", "track.id")
	return queryPage[model.Track](r.sqlRepository, sq, rng)
}

func (r *trackRepository) FindFromID(lastRetrievedID model.TrackID, count int, fn func(*model.Track) error) (model.TrackID, error) {
	sq := r.newSelect().
		Where(Gt{"track.id": int64(lastRetrievedID)}).
		OrderBy("track.id").
		Limit(uint64(count))
	cursor := lastRetrievedID
	err := visitEach[model.Track](r.sqlRepository, sq, func(t *model.Track) error {
		cursor = t.ID
		return fn(t)
	})
	return cursor, err
}

func (r *trackRepository) FindNextIDRange(lastRetrievedID model.TrackID, count int) (model.IDRange[model.TrackID], error) {
	return findNextIDRange[model.TrackID](r.sqlRepository, int64(lastRetrievedID), count)
}

func (r *trackRepository) FindInIDRange(idRange model.IDRange[model.TrackID], fn func(*model.Track) error) error {
	sq := r.newSelect().
		Where(GtOrEq{"track.id": int64(idRange.First)}).
		Where(LtOrEq{"track.id": int64(idRange.Last)}).
		OrderBy("track.id")
	return visitEach[model.Track](r.sqlRepository, sq, fn)
}

func (r *trackRepository) FindIDsWithMBIDDuplicates(rng *model.Range) (model.RangeResults[model.TrackID], error) {
	sq := r.newSelect("track.id").
		Where(NotEq{"track.track_mbid": ""}).
		Where(Expr("track.track_mbid IN (SELECT track_mbid FROM track GROUP BY track_mbid HAVING COUNT(*) > 1)")).
		OrderBy("track.track_mbid", "track.id")
	return queryIDPage[model.TrackID](r.sqlRepository, sq, rng)
}

func (r *trackRepository) SetClusters(id model.TrackID, clusterIDs []model.ClusterID) error {
	if _, err := r.executeSQL(Delete("track_cluster").Where(Eq{"track_id": int64(id)})); err != nil {
		return err
	}
	if len(clusterIDs) == 0 {
		return nil
	}
	ins := Insert("track_cluster").Columns("track_id", "cluster_id")
	for _, cid := range clusterIDs {
		ins = ins.Values(int64(id), int64(cid))
	}
	_, err := r.executeSQL(ins)
	return err
}

func (r *trackRepository) GetClusters(id model.TrackID) (model.Clusters, error) {
	sq := Select("cluster.*").From("cluster").
		Join("track_cluster ON track_cluster.cluster_id = cluster.id").
		Where(Eq{"track_cluster.track_id": int64(id)}).
		OrderBy("cluster.cluster_type_id", "cluster.name")
	var res model.Clusters
	err := r.queryAll(sq, &res)
	return res, err
}

func (r *trackRepository) UpdatePreferredArtwork(id model.TrackID, artworkID model.ArtworkID) error {
	_, err := r.executeSQL(Update(r.tableName).
		Set("preferred_artwork_id", artworkID).
		Where(Eq{"id": int64(id)}))
	return err
}

func (r *trackRepository) UpdatePreferredMediaArtwork(id model.TrackID, artworkID model.ArtworkID) error {
	_, err := r.executeSQL(Update(r.tableName).
		Set("preferred_media_artwork_id", artworkID).
		Where(Eq{"id": int64(id)}))
	return err
}

var _ model.TrackRepository = (*trackRepository)(nil)
