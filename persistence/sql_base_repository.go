package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	. "github.com/Masterminds/squirrel"
	"github.com/fatih/structs"
	"github.com/mattn/go-sqlite3"
	"github.com/pocketbase/dbx"

	"github.com/melisma/melisma/conf"
	"github.com/melisma/melisma/log"
	"github.com/melisma/melisma/model"
)

// sqlRepository is embedded by every entity repository. It carries the
// session: a context, the statement executor (pool or transaction) and the
// transaction mode for the discipline checks.
type sqlRepository struct {
	ctx       context.Context
	db        dbx.Builder
	tableName string
	mode      txMode
}

// checkRead and checkWrite enforce the transaction discipline: with
// DevCheckTx on, accessors must run under at least a read transaction and
// mutators under a write transaction. Violations are fatal, as they are
// programming errors that would otherwise hide behind autocommit.
func (r sqlRepository) checkRead() {
	if conf.Server.DevCheckTx && r.mode == txNone {
		log.Fatal(r.ctx, "Entity accessor called outside a transaction", "table", r.tableName)
	}
}

func (r sqlRepository) checkWrite() {
	if conf.Server.DevCheckTx && r.mode != txWrite {
		log.Fatal(r.ctx, "Entity mutator called outside a write transaction", "table", r.tableName)
	}
}

func (r sqlRepository) newSelect(columns ...string) SelectBuilder {
	if len(columns) == 0 {
		columns = []string{r.tableName + ".*"}
	}
	return Select(columns...).From(r.tableName)
}

// toSQL renders a squirrel builder and rebinds its positional placeholders
// as dbx named params.
func (r sqlRepository) toSQL(sq Sqlizer) (string, dbx.Params, error) {
	query, args, err := sq.ToSql()
	if err != nil {
		return "", nil, err
	}
	params := dbx.Params{}
	for i, arg := range args {
		p := fmt.Sprintf("p%d", i)
		query = strings.Replace(query, "?", "{:"+p+"}", 1)
		params[p] = arg
	}
	return query, params, nil
}

func (r sqlRepository) queryOne(sq Sqlizer, response any) error {
	r.checkRead()
	query, params, err := r.toSQL(sq)
	if err != nil {
		return err
	}
	err = r.db.NewQuery(query).Bind(params).WithContext(r.ctx).One(response)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return translateError(err)
}

func (r sqlRepository) queryAll(sq Sqlizer, response any) error {
	r.checkRead()
	query, params, err := r.toSQL(sq)
	if err != nil {
		return err
	}
	return translateError(r.db.NewQuery(query).Bind(params).WithContext(r.ctx).All(response))
}

// queryColumn scans the first column of every row, for id listings.
func (r sqlRepository) queryColumn(sq Sqlizer, response any) error {
	r.checkRead()
	query, params, err := r.toSQL(sq)
	if err != nil {
		return err
	}
	return translateError(r.db.NewQuery(query).Bind(params).WithContext(r.ctx).Column(response))
}

func (r sqlRepository) executeSQL(sq Sqlizer) (int64, error) {
	r.checkWrite()
	query, params, err := r.toSQL(sq)
	if err != nil {
		return 0, err
	}
	res, err := r.db.NewQuery(query).Bind(params).WithContext(r.ctx).Execute()
	if err != nil {
		return 0, translateError(err)
	}
	c, _ := res.RowsAffected()
	return c, nil
}

type countRow struct {
	C int64 `db:"c"`
}

func (r sqlRepository) exists(cond Sqlizer) (bool, error) {
	var res countRow
	err := r.queryOne(Select("count(*) as c").From(r.tableName).Where(cond), &res)
	return res.C > 0, err
}

func (r sqlRepository) count(sq SelectBuilder) (int64, error) {
	var res countRow
	err := r.queryOne(sq.RemoveColumns().Column("count(distinct "+r.tableName+".id) as c"), &res)
	return res.C, err
}

// toArgs maps an entity struct to column→value args via its structs tags,
// keeping struct-typed values (time.Time) whole. Invalid (zero) id values
// bind as NULL through their driver.Valuer, which is what nullable foreign
// keys need.
func toArgs(m any) map[string]any {
	s := structs.New(m)
	s.TagName = "structs"
	args := make(map[string]any, len(s.Fields()))
	for _, f := range s.Fields() {
		name := f.Tag("structs")
		if name == "" || name == "-" {
			continue
		}
		args[name] = f.Value()
	}
	return args
}

// put inserts the entity when id is invalid, updates it otherwise. On
// insert, the database-assigned id is returned; columns may restrict an
// update to a subset.
func (r sqlRepository) put(id int64, m any, columns ...string) (int64, error) {
	r.checkWrite()
	args := toArgs(m)
	delete(args, "id")
	if len(columns) > 0 {
		sub := map[string]any{}
		for _, col := range columns {
			sub[col] = args[col]
		}
		args = sub
	}
	if id > 0 {
		upd := Update(r.tableName).SetMap(args).Where(Eq{"id": id})
		c, err := r.executeSQL(upd)
		if err != nil {
			return 0, err
		}
		if c == 0 {
			return 0, model.ErrNotFound
		}
		return id, nil
	}
	ins := Insert(r.tableName).SetMap(args)
	query, params, err := r.toSQL(ins)
	if err != nil {
		return 0, err
	}
	res, err := r.db.NewQuery(query).Bind(params).WithContext(r.ctx).Execute()
	if err != nil {
		return 0, translateError(err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return newID, nil
}

func (r sqlRepository) delete(cond Sqlizer) error {
	_, err := r.executeSQL(Delete(r.tableName).Where(cond))
	return err
}

func (r sqlRepository) deleteCount(cond Sqlizer) (int64, error) {
	return r.executeSQL(Delete(r.tableName).Where(cond))
}

// applyRange over-fetches one row so MoreResults comes for free. Visitor
// paths use exactRange instead, as they must not see the probe row.
func applyRange(sq SelectBuilder, rng *model.Range) SelectBuilder {
	if rng == nil {
		return sq
	}
	return sq.Offset(uint64(rng.Offset)).Limit(uint64(rng.Size) + 1)
}

func exactRange(sq SelectBuilder, rng *model.Range) SelectBuilder {
	if rng == nil {
		return sq
	}
	return sq.Offset(uint64(rng.Offset)).Limit(uint64(rng.Size))
}

func pageOf[T any](results []T, rng *model.Range) model.RangeResults[T] {
	out := model.RangeResults[T]{Results: results}
	if rng != nil {
		out.Range = *rng
		if len(results) > rng.Size {
			out.MoreResults = true
			out.Results = results[:rng.Size]
		}
		out.Range.Size = len(out.Results)
	} else {
		out.Range = model.Range{Offset: 0, Size: len(results)}
	}
	return out
}

// queryPage runs a listing returning full entities.
func queryPage[T any](r sqlRepository, sq SelectBuilder, rng *model.Range) (model.RangeResults[T], error) {
	var res []T
	if err := r.queryAll(applyRange(sq, rng), &res); err != nil {
		return model.RangeResults[T]{}, err
	}
	return pageOf(res, rng), nil
}

// queryIDPage runs a listing returning only ids.
func queryIDPage[T ~int64](r sqlRepository, sq SelectBuilder, rng *model.Range) (model.RangeResults[T], error) {
	var res []T
	if err := r.queryColumn(applyRange(sq, rng), &res); err != nil {
		return model.RangeResults[T]{}, err
	}
	return pageOf(res, rng), nil
}

// visitEach streams rows through fn without materializing the page.
func visitEach[T any](r sqlRepository, sq SelectBuilder, fn func(*T) error) error {
	r.checkRead()
	query, params, err := r.toSQL(sq)
	if err != nil {
		return err
	}
	rows, err := r.db.NewQuery(query).Bind(params).WithContext(r.ctx).Rows()
	if err != nil {
		return translateError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var row T
		if err := rows.ScanStruct(&row); err != nil {
			return translateError(err)
		}
		if err := fn(&row); err != nil {
			return err
		}
	}
	return translateError(rows.Err())
}

// translateError maps backend errors to the model taxonomy. Anything else
// passes through untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: %v", model.ErrIntegrityViolation, err)
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return fmt.Errorf("%w: %v", model.ErrTransactionConflict, err)
		}
	}
	return err
}
