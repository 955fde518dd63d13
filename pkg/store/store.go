// Package store is the persistence gateway shared by the catalog resources. A
// Store wraps one table and translates "no row" into a NotFound error so
// callers can tell a missing record apart from a storage failure.
package store

import (
	"context"
	"database/sql"
	"slices"
	"sort"
	"time"

	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Record is implemented by every model a Store can hold.
type Record interface {
	PrimaryKey() int
	SetPrimaryKey(id int)
	Touch(now time.Time)
}

// Model constrains P to be a pointer to T that is also a Record, which lets a
// Store allocate T values and still call the Record methods.
type Model[T any] interface {
	*T
	Record
}

// Filter is an equality filter keyed by column name.
type Filter map[string]any

type FindOptions struct {
	Filter    Filter
	Relations []string
	// Order holds raw ORDER BY expressions, e.g. "a.family_name ASC".
	Order []string
}

type Store[T any, P Model[T]] struct {
	db       bun.IDB
	resource string
}

// New returns a Store over T's table. resource is the human name used in
// NotFound messages, e.g. "Author".
func New[T any, P Model[T]](db bun.IDB, resource string) *Store[T, P] {
	return &Store[T, P]{db: db, resource: resource}
}

// WithTx returns a copy of the store bound to tx.
func (s *Store[T, P]) WithTx(tx bun.IDB) *Store[T, P] {
	return &Store[T, P]{db: tx, resource: s.resource}
}

func (s *Store[T, P]) Resource() string {
	return s.resource
}

// Find returns every record matching opts. It never returns a nil slice.
func (s *Store[T, P]) Find(ctx context.Context, opts FindOptions) ([]P, error) {
	items := []P{}

	q := s.db.NewSelect().Model(&items)
	q = applyFilter(q, opts.Filter)
	for _, rel := range opts.Relations {
		q = q.Relation(rel)
	}
	for _, order := range opts.Order {
		q = q.OrderExpr(order)
	}
	if len(opts.Order) == 0 {
		q = q.OrderExpr("?TableAlias.id ASC")
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return items, nil
}

// FindByID returns the record with the given id, populating any named
// relations.
func (s *Store[T, P]) FindByID(ctx context.Context, id int, relations ...string) (P, error) {
	item := P(new(T))

	q := s.db.NewSelect().
		Model(item).
		Where("?TableAlias.id = ?", id)
	for _, rel := range relations {
		q = q.Relation(rel)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound(s.resource)
		}
		return nil, errors.WithStack(err)
	}
	return item, nil
}

func (s *Store[T, P]) Count(ctx context.Context, filter Filter) (int, error) {
	q := s.db.NewSelect().Model((*T)(nil))
	q = applyFilter(q, filter)

	count, err := q.Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return count, nil
}

// Insert stores item and fills in its id and timestamps.
func (s *Store[T, P]) Insert(ctx context.Context, item P) error {
	item.Touch(time.Now())

	_, err := s.db.
		NewInsert().
		Model(item).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

// UpdateByID replaces the given columns of the record with id using the values
// in item, then returns the stored record.
func (s *Store[T, P]) UpdateByID(ctx context.Context, id int, item P, columns ...string) (P, error) {
	item.SetPrimaryKey(id)
	item.Touch(time.Now())

	cols := append(slices.Clone(columns), "updated_at")
	res, err := s.db.
		NewUpdate().
		Model(item).
		Column(cols...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if n == 0 {
		return nil, errcodes.NotFound(s.resource)
	}

	return s.FindByID(ctx, id)
}

// DeleteByID removes the record with id and returns it as it was before the
// delete.
func (s *Store[T, P]) DeleteByID(ctx context.Context, id int) (P, error) {
	item, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = s.db.
		NewDelete().
		Model(item).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return item, nil
}

func applyFilter(q *bun.SelectQuery, filter Filter) *bun.SelectQuery {
	columns := make([]string, 0, len(filter))
	for column := range filter {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		q = q.Where("?TableAlias.? = ?", bun.Ident(column), filter[column])
	}
	return q
}
