package persistence

import (
	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

// findNextIDRange computes the id bounds of the next batch: the min and max
// of the first count ids strictly greater than the cursor. Scans built this
// way visit rows created concurrently with id above the cursor and never
// revisit ids at or below it.
func findNextIDRange[T ~int64](r sqlRepository, lastRetrievedID int64, count int) (model.IDRange[T], error) {
	sub := Select("id").From(r.tableName).
		Where(Gt{"id": lastRetrievedID}).
		OrderBy("id").
		Limit(uint64(count))
	sq := Select("ifnull(min(id), 0) as first", "ifnull(max(id), 0) as last").
		FromSelect(sub, "ids")
	var res struct {
		First int64 `db:"first"`
		Last  int64 `db:"last"`
	}
	if err := r.queryOne(sq, &res); err != nil {
		return model.IDRange[T]{}, err
	}
	return model.IDRange[T]{First: T(res.First), Last: T(res.Last)}, nil
}
