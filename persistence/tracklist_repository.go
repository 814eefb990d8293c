package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type trackListRepository struct {
	sqlRepository
}

func newTrackListRepository(ctx context.Context, s *SQLStore) model.TrackListRepository {
	return &trackListRepository{s.baseRepo(ctx, "tracklist")}
}

func (r *trackListRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *trackListRepository) Get(id model.TrackListID) (*model.TrackList, error) {
	var res model.TrackList
	err := r.queryOne(r.newSelect().Where(Eq{"tracklist.id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackListRepository) GetByName(name string, userID model.UserID, typ model.TrackListType) (*model.TrackList, error) {
	var res model.TrackList
	err := r.queryOne(r.newSelect().Where(Eq{
		"name":    name,
		"user_id": int64(userID),
		"type":    int(typ),
	}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackListRepository) Put(tl *model.TrackList) error {
	id, err := r.put(int64(tl.ID), tl)
	if err != nil {
		return err
	}
	tl.ID = model.TrackListID(id)
	return nil
}

func (r *trackListRepository) Delete(id model.TrackListID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *trackListRepository) Find(p model.TrackListFindParameters) (model.RangeResults[model.TrackList], error) {
	sq := r.newSelect()
	if p.User.IsValid() {
		sq = sq.Where(Eq{"tracklist.user_id": int64(p.User)})
	}
	if p.Type != nil {
		sq = sq.Where(Eq{"tracklist.type": int(*p.Type)})
	}
	if p.ExcludeIfSingleRelease {
		sq = sq.Where(Expr(
			"(SELECT count(distinct t.release_id) FROM tracklist_entry tle JOIN track t ON t.id = tle.track_id WHERE tle.tracklist_id = tracklist.id) > 1"))
	}
	sq = sq.OrderBy("tracklist.name collate nocase", "tracklist.id")
	return queryPage[model.TrackList](r.sqlRepository, sq, p.Range)
}

func (r *trackListRepository) AddEntry(e *model.TrackListEntry) error {
	re := sqlRepository{ctx: r.ctx, db: r.db, tableName: "tracklist_entry", mode: r.mode}
	id, err := re.put(int64(e.ID), e)
	if err != nil {
		return err
	}
	e.ID = model.TrackListEntryID(id)
	return nil
}

func (r *trackListRepository) DeleteEntry(id model.TrackListEntryID) error {
	_, err := r.executeSQL(Delete("tracklist_entry").Where(Eq{"id": int64(id)}))
	return err
}

func (r *trackListRepository) GetEntries(id model.TrackListID, rng *model.Range) (model.RangeResults[model.TrackListEntry], error) {
	sq := Select("tracklist_entry.*").From("tracklist_entry").
		Where(Eq{"tracklist_id": int64(id)}).
		OrderBy("tracklist_entry.id")
	return queryPage[model.TrackListEntry](r.sqlRepository, sq, rng)
}

func (r *trackListRepository) GetEntryCount(id model.TrackListID) (int64, error) {
	var res countRow
	err := r.queryOne(Select("count(*) as c").From("tracklist_entry").Where(Eq{"tracklist_id": int64(id)}), &res)
	return res.C, err
}

func (r *trackListRepository) GetDuration(id model.TrackListID) (float32, error) {
	var res struct {
		D float32 `db:"d"`
	}
	sq := Select("ifnull(sum(track.duration), 0) as d").From("tracklist_entry").
		Join("track ON track.id = tracklist_entry.track_id").
		Where(Eq{"tracklist_entry.tracklist_id": int64(id)})
	err := r.queryOne(sq, &res)
	return res.D, err
}

var _ model.TrackListRepository = (*trackListRepository)(nil)
