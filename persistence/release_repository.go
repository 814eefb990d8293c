package persistence

import (
	"context"
	"fmt"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type releaseRepository struct {
	sqlRepository
}

func newReleaseRepository(ctx context.Context, s *SQLStore) model.ReleaseRepository {
	return &releaseRepository{s.baseRepo(ctx, "release")}
}

func (r *releaseRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *releaseRepository) Get(id model.ReleaseID) (*model.Release, error) {
	var res model.Release
	err := r.queryOne(r.newSelect().Where(Eq{"release.id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *releaseRepository) Exists(id model.ReleaseID) (bool, error) {
	return r.exists(Eq{"id": int64(id)})
}

func (r *releaseRepository) GetByMBID(mbid string) (model.Releases, error) {
	expr := mbidExpr(mbid, "mbid")
	if expr == nil {
		return nil, nil
	}
	var res model.Releases
	err := r.queryAll(r.newSelect().Where(expr).OrderBy("release.id"), &res)
	return res, err
}

func (r *releaseRepository) GetByName(name string) (model.Releases, error) {
	var res model.Releases
	err := r.queryAll(r.newSelect().Where(Eq{"name": name}).OrderBy("release.id"), &res)
	return res, err
}

func (r *releaseRepository) Put(rel *model.Release) error {
	id, err := r.put(int64(rel.ID), rel)
	if err != nil {
		return err
	}
	rel.ID = model.ReleaseID(id)
	return nil
}

func (r *releaseRepository) Delete(id model.ReleaseID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *releaseRepository) UpdatePreferredArtwork(id model.ReleaseID, artworkID model.ArtworkID) error {
	_, err := r.executeSQL(Update(r.tableName).
		Set("preferred_artwork_id", artworkID).
		Where(Eq{"id": int64(id)}))
	return err
}

// Labels, countries and release types share one shape: a name table plus a
// join table, names created on first use. setNames replaces the full set.
func (r *releaseRepository) setNames(id model.ReleaseID, nameTable, joinTable, fkColumn string, names []string) error {
	if _, err := r.executeSQL(Delete(joinTable).Where(Eq{"release_id": int64(id)})); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := r.executeSQL(Insert(nameTable).Columns("name").Values(name).
			Suffix("ON CONFLICT(name) DO NOTHING")); err != nil {
			return err
		}
		ins := Expr(fmt.Sprintf("INSERT INTO %s (release_id, %s) SELECT ?, id FROM %s WHERE name = ?", joinTable, fkColumn, nameTable),
			int64(id), name)
		if _, err := r.executeSQL(ins); err != nil {
			return err
		}
	}
	return nil
}

func (r *releaseRepository) getNames(id model.ReleaseID, nameTable, joinTable, fkColumn string) ([]string, error) {
	sq := Select(nameTable + ".name").From(nameTable).
		Join(fmt.Sprintf("%s ON %s.%s = %s.id", joinTable, joinTable, fkColumn, nameTable)).
		Where(Eq{joinTable + ".release_id": int64(id)}).
		OrderBy(nameTable + ".name")
	var res []string
	err := r.queryColumn(sq, &res)
	return res, err
}

func (r *releaseRepository) SetLabels(id model.ReleaseID, labels []string) error {
	return r.setNames(id, "label", "release_label", "label_id", labels)
}

func (r *releaseRepository) GetLabels(id model.ReleaseID) ([]string, error) {
	return r.getNames(id, "label", "release_label", "label_id")
}

func (r *releaseRepository) SetCountries(id model.ReleaseID, countries []string) error {
	return r.setNames(id, "country", "release_country", "country_id", countries)
}

func (r *releaseRepository) GetCountries(id model.ReleaseID) ([]string, error) {
	return r.getNames(id, "country", "release_country", "country_id")
}

func (r *releaseRepository) SetReleaseTypes(id model.ReleaseID, types []string) error {
	return r.setNames(id, "release_type", "release_release_type", "release_type_id", types)
}

func (r *releaseRepository) GetReleaseTypes(id model.ReleaseID) ([]string, error) {
	return r.getNames(id, "release_type", "release_release_type", "release_type_id")
}

func (r *releaseRepository) PutMedium(m *model.Medium) error {
	rm := sqlRepository{ctx: r.ctx, db: r.db, tableName: "medium", mode: r.mode}
	id, err := rm.put(int64(m.ID), m)
	if err != nil {
		return err
	}
	m.ID = model.MediumID(id)
	return nil
}

func (r *releaseRepository) GetMediums(id model.ReleaseID) (model.Mediums, error) {
	var res model.Mediums
	err := r.queryAll(Select("medium.*").From("medium").
		Where(Eq{"release_id": int64(id)}).OrderBy("position"), &res)
	return res, err
}

func (r *releaseRepository) GetAggregates(id model.ReleaseID) (*model.ReleaseAggregates, error) {
	sq := Select(
		"count(t.id) as track_count",
		"count(distinct t.medium_id) as disc_count",
		"ifnull(sum(t.duration), 0) as duration",
		"ifnull(min(nullif(t.date, '')), '') as date",
	).From("track t").Where(Eq{"t.release_id": int64(id)})
	var row struct {
		TrackCount int64   `db:"track_count"`
		DiscCount  int64   `db:"disc_count"`
		Duration   float32 `db:"duration"`
		Date       string  `db:"date"`
	}
	if err := r.queryOne(sq, &row); err != nil {
		return nil, err
	}
	res := &model.ReleaseAggregates{
		TrackCount: row.TrackCount,
		DiscCount:  row.DiscCount,
		Duration:   row.Duration,
		Date:       row.Date,
	}
	res.Year = partialDateYearSQL(row.Date)
	origRow := struct {
		Date string `db:"date"`
	}{}
	origSq := Select("ifnull(min(nullif(t.original_date, '')), '') as date").
		From("track t").Where(Eq{"t.release_id": int64(id)})
	if err := r.queryOne(origSq, &origRow); err != nil {
		return nil, err
	}
	res.OriginalYear = partialDateYearSQL(origRow.Date)
	return res, nil
}

func (r *releaseRepository) applyFilters(sq SelectBuilder, p model.ReleaseFindParameters) SelectBuilder {
	if len(p.Clusters) > 0 {
		sq = sq.Where(releaseClusterFilter(p.Clusters))
	}
	if len(p.Keywords) > 0 {
		sq = sq.Where(keywordFilter([]string{"release.name", "release.sort_name"}, p.Keywords))
	}
	if p.Name != "" {
		sq = sq.Where(Eq{"release.name": p.Name})
	}
	if !p.WrittenAfter.IsZero() {
		sq = sq.Where(Expr("EXISTS (SELECT 1 FROM track WHERE track.release_id = release.id AND track.file_last_write > ?)", p.WrittenAfter))
	}
	if p.DateFrom != "" {
		sq = sq.Where(Expr("EXISTS (SELECT 1 FROM track WHERE track.release_id = release.id AND track.date >= ?)", p.DateFrom))
	}
	if p.DateTo != "" {
		sq = sq.Where(Expr("EXISTS (SELECT 1 FROM track WHERE track.release_id = release.id AND track.date <= ? AND track.date <> '')", p.DateTo))
	}
	if p.StarringUser.IsValid() {
		sq = sq.Where(starredFilter("release.id", "starred_release", "release_id", p.StarringUser, p.FeedbackBackend))
	}
	if p.Artist.IsValid() {
		cond := And{Eq{"tal.artist_id": int64(p.Artist)}}
		if len(p.LinkTypes) > 0 {
			types := make([]int, len(p.LinkTypes))
			for i, t := range p.LinkTypes {
				types[i] = int(t)
			}
			cond = append(cond, Eq{"tal.type": types})
		}
		where, args, _ := cond.ToSql()
		sq = sq.Where(Expr(
			"release.id IN (SELECT t.release_id FROM track t JOIN track_artist_link tal ON tal.track_id = t.id WHERE "+where+")",
			args...))
	}
	if p.ReleaseType != "" {
		sq = sq.Where(Expr(
			"release.id IN (SELECT release_id FROM release_release_type rrt JOIN release_type rt ON rt.id = rrt.release_type_id WHERE rt.name = ?)",
			p.ReleaseType))
	}
	if p.Label != "" {
		sq = sq.Where(Expr(
			"release.id IN (SELECT release_id FROM release_label rl JOIN label l ON l.id = rl.label_id WHERE l.name = ?)",
			p.Label))
	}
	if p.Library.IsValid() {
		sq = sq.Where(Expr("EXISTS (SELECT 1 FROM track WHERE track.release_id = release.id AND track.media_library_id = ?)",
			int64(p.Library)))
	}
	if p.ParentDirectory.IsValid() {
		sq = sq.Where(Expr("EXISTS (SELECT 1 FROM track WHERE track.release_id = release.id AND track.directory_id = ?)",
			int64(p.ParentDirectory)))
	}
	switch p.SortMethod {
	case model.ReleaseSortMethodByName:
		sq = sq.OrderBy("release.name collate nocase", "release.id")
	case model.ReleaseSortMethodRandom:
		sq = sq.OrderBy("random()")
	case model.ReleaseSortMethodAddedDesc:
		sq = sq.OrderBy("(SELECT max(t.file_added) FROM track t WHERE t.release_id = release.id) desc", "release.id desc")
	case model.ReleaseSortMethodDateAsc:
		sq = sq.OrderBy(releaseDateExpr("date")+" asc", "release.name collate nocase")
	case model.ReleaseSortMethodDateDesc:
		sq = sq.OrderBy(releaseDateExpr("date")+" desc", "release.name collate nocase")
	case model.ReleaseSortMethodOriginalDateAsc:
		sq = sq.OrderBy(releaseDateExpr("original_date")+" asc", "release.name collate nocase")
	case model.ReleaseSortMethodOriginalDateDesc:
		sq = sq.OrderBy(releaseDateExpr("original_date")+" desc", "release.name collate nocase")
	}
	return sq
}

func partialDateYearSQL(date string) int {
	if len(date) < 4 {
		return 0
	}
	var y int
	if _, err := fmt.Sscanf(date[:4], "%d", &y); err != nil {
		return 0
	}
	return y
}

func releaseDateExpr(column string) string {
	return fmt.Sprintf("(SELECT min(nullif(t.%s, '')) FROM track t WHERE t.release_id = release.id)", column)
}

func (r *releaseRepository) Find(p model.ReleaseFindParameters) (model.RangeResults[model.Release], error) {
	sq := r.applyFilters(r.newSelect(), p)
	return queryPage[model.Release](r.sqlRepository, sq, p.Range)
}

func (r *releaseRepository) FindIDs(p model.ReleaseFindParameters) (model.RangeResults[model.ReleaseID], error) {
	sq := r.applyFilters(r.newSelect("release.id"), p)
	return queryIDPage[model.ReleaseID](r.sqlRepository, sq, p.Range)
}

func (r *releaseRepository) FindEach(p model.ReleaseFindParameters, fn func(*model.Release) error) error {
	sq := exactRange(r.applyFilters(r.newSelect(), p), p.Range)
	return visitEach[model.Release](r.sqlRepository, sq, fn)
}

func (r *releaseRepository) FindNextIDRange(lastRetrievedID model.ReleaseID, count int) (model.IDRange[model.ReleaseID], error) {
	return findNextIDRange[model.ReleaseID](r.sqlRepository, int64(lastRetrievedID), count)
}

func (r *releaseRepository) FindInIDRange(idRange model.IDRange[model.ReleaseID], fn func(*model.Release) error) error {
	sq := r.newSelect().
		Where(GtOrEq{"release.id": int64(idRange.First)}).
		Where(LtOrEq{"release.id": int64(idRange.Last)}).
		OrderBy("release.id")
	return visitEach[model.Release](r.sqlRepository, sq, fn)
}

func (r *releaseRepository) FindOrphanIDs(rng *model.Range) (model.RangeResults[model.ReleaseID], error) {
	sq := r.newSelect("release.id").
		Where(Expr("NOT EXISTS (SELECT 1 FROM track WHERE track.release_id = release.id)")).
		OrderBy("release.id")
	return queryIDPage[model.ReleaseID](r.sqlRepository, sq, rng)
}

func (r *releaseRepository) PurgeOrphans() (int64, error) {
	return r.deleteCount(Expr("NOT EXISTS (SELECT 1 FROM track WHERE track.release_id = release.id)"))
}

var _ model.ReleaseRepository = (*releaseRepository)(nil)
