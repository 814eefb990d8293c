package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type artistRepository struct {
	sqlRepository
}

func newArtistRepository(ctx context.Context, s *SQLStore) model.ArtistRepository {
	return &artistRepository{s.baseRepo(ctx, "artist")}
}

func (r *artistRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *artistRepository) Get(id model.ArtistID) (*model.Artist, error) {
	var res model.Artist
	err := r.queryOne(r.newSelect().Where(Eq{"artist.id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *artistRepository) Exists(id model.ArtistID) (bool, error) {
	return r.exists(Eq{"id": int64(id)})
}

func (r *artistRepository) GetByMBID(mbid string) (model.Artists, error) {
	expr := mbidExpr(mbid, "mbid")
	if expr == nil {
		return nil, nil
	}
	var res model.Artists
	err := r.queryAll(r.newSelect().Where(expr).OrderBy("artist.id"), &res)
	return res, err
}

func (r *artistRepository) GetByName(name string) (model.Artists, error) {
	var res model.Artists
	err := r.queryAll(r.newSelect().Where(Eq{"name": name}).OrderBy("artist.id"), &res)
	return res, err
}

func (r *artistRepository) Put(a *model.Artist) error {
	id, err := r.put(int64(a.ID), a)
	if err != nil {
		return err
	}
	a.ID = model.ArtistID(id)
	return nil
}

func (r *artistRepository) Delete(id model.ArtistID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *artistRepository) UpdatePreferredArtwork(id model.ArtistID, artworkID model.ArtworkID) error {
	_, err := r.executeSQL(Update(r.tableName).
		Set("preferred_artwork_id", artworkID).
		Where(Eq{"id": int64(id)}))
	return err
}

func (r *artistRepository) applyFilters(sq SelectBuilder, p model.ArtistFindParameters) SelectBuilder {
	if len(p.Clusters) > 0 {
		sq = sq.Where(artistClusterFilter(p.Clusters))
	}
	if len(p.Keywords) > 0 {
		// Artists match on either the display name or the sort name.
		sq = sq.Where(keywordFilter([]string{"artist.name", "artist.sort_name"}, p.Keywords))
	}
	if p.Name != "" {
		sq = sq.Where(Eq{"artist.name": p.Name})
	}
	if p.StarringUser.IsValid() {
		sq = sq.Where(starredFilter("artist.id", "starred_artist", "artist_id", p.StarringUser, p.FeedbackBackend))
	}
	if len(p.LinkTypes) > 0 || !p.WrittenAfter.IsZero() || p.Library.IsValid() || p.TrackList.IsValid() {
		sq = sq.Where(r.linkSubquery(p))
	}
	if p.MBIDExists != nil {
		if *p.MBIDExists {
			sq = sq.Where(NotEq{"artist.mbid": ""})
		} else {
			sq = sq.Where(Eq{"artist.mbid": ""})
		}
	}
	switch p.SortMethod {
	case model.ArtistSortMethodByName:
		sq = sq.OrderBy("artist.name collate nocase", "artist.id")
	case model.ArtistSortMethodBySortName:
		sq = sq.OrderBy("artist.sort_name collate nocase", "artist.id")
	case model.ArtistSortMethodRandom:
		sq = sq.OrderBy("random()")
	case model.ArtistSortMethodLastWrittenDesc:
		sq = sq.OrderBy("(SELECT max(t.file_last_write) FROM track_artist_link tal JOIN track t ON t.id = tal.track_id WHERE tal.artist_id = artist.id) desc")
	}
	return sq
}

// linkSubquery restricts artists through their track links: by link type, by
// track write time, by library or by tracklist membership.
func (r *artistRepository) linkSubquery(p model.ArtistFindParameters) Sqlizer {
	sub := Select("tal.artist_id").From("track_artist_link tal")
	cond := And{}
	if len(p.LinkTypes) > 0 {
		types := make([]int, len(p.LinkTypes))
		for i, t := range p.LinkTypes {
			types[i] = int(t)
		}
		cond = append(cond, Eq{"tal.type": types})
	}
	if !p.WrittenAfter.IsZero() || p.Library.IsValid() {
		sub = sub.Join("track t ON t.id = tal.track_id")
		if !p.WrittenAfter.IsZero() {
			cond = append(cond, Gt{"t.file_last_write": p.WrittenAfter})
		}
		if p.Library.IsValid() {
			cond = append(cond, Eq{"t.media_library_id": int64(p.Library)})
		}
	}
	if p.TrackList.IsValid() {
		sub = sub.Join("tracklist_entry tle ON tle.track_id = tal.track_id")
		cond = append(cond, Eq{"tle.tracklist_id": int64(p.TrackList)})
	}
	sub = sub.Where(cond)
	query, args, _ := sub.ToSql()
	return Expr("artist.id IN ("+query+")", args...)
}

func (r *artistRepository) Find(p model.ArtistFindParameters) (model.RangeResults[model.Artist], error) {
	sq := r.applyFilters(r.newSelect(), p)
	return queryPage[model.Artist](r.sqlRepository, sq, p.Range)
}

func (r *artistRepository) FindIDs(p model.ArtistFindParameters) (model.RangeResults[model.ArtistID], error) {
	sq := r.applyFilters(r.newSelect("artist.id"), p)
	return queryIDPage[model.ArtistID](r.sqlRepository, sq, p.Range)
}

func (r *artistRepository) FindEach(p model.ArtistFindParameters, fn func(*model.Artist) error) error {
	sq := exactRange(r.applyFilters(r.newSelect(), p), p.Range)
	return visitEach[model.Artist](r.sqlRepository, sq, fn)
}

func (r *artistRepository) GetReleaseCount(id model.ArtistID, linkTypes ...model.TrackArtistLinkType) (int64, error) {
	cond := And{Eq{"tal.artist_id": int64(id)}, NotEq{"t.release_id": nil}}
	if len(linkTypes) > 0 {
		types := make([]int, len(linkTypes))
		for i, t := range linkTypes {
			types[i] = int(t)
		}
		cond = append(cond, Eq{"tal.type": types})
	}
	sq := Select("count(distinct t.release_id) as c").
		From("track_artist_link tal").
		Join("track t ON t.id = tal.track_id").
		Where(cond)
	var res countRow
	err := r.queryOne(sq, &res)
	return res.C, err
}

func (r *artistRepository) FindOrphanIDs(rng *model.Range) (model.RangeResults[model.ArtistID], error) {
	sq := r.newSelect("artist.id").
		Where(Expr("NOT EXISTS (SELECT 1 FROM track_artist_link WHERE track_artist_link.artist_id = artist.id)")).
		OrderBy("artist.id")
	return queryIDPage[model.ArtistID](r.sqlRepository, sq, rng)
}

func (r *artistRepository) PurgeOrphans() (int64, error) {
	return r.deleteCount(Expr("NOT EXISTS (SELECT 1 FROM track_artist_link WHERE track_artist_link.artist_id = artist.id)"))
}

var _ model.ArtistRepository = (*artistRepository)(nil)
