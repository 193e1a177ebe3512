package lookup

import (
	"context"
	"strconv"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Lookup, error)
	GetByKey(ctx context.Context, key string) ([]Lookup, error)
	Get(ctx context.Context, id int64) (*Lookup, error)
	Create(ctx context.Context, l *Lookup) (int64, error)
	Update(ctx context.Context, l *Lookup) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct {
	db *backend.Client
}

func New(db *backend.Client) Repository {
	return &repo{db: db}
}

func (r *repo) list(ctx context.Context, q backend.Query) ([]Lookup, error) {
	var out []Lookup
	err := r.db.Select(ctx, Table, q, &out)
	if apperr.DegradesToEmpty(err) {
		return []Lookup{}, nil
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Lookup{}
	}
	return out, nil
}

func (r *repo) GetAll(ctx context.Context) ([]Lookup, error) {
	return r.list(ctx, backend.OrderBy(KeyColumn))
}

func (r *repo) GetByKey(ctx context.Context, key string) ([]Lookup, error) {
	return r.list(ctx, backend.Eq(keyField, key).Order(KeyColumn))
}

func (r *repo) Get(ctx context.Context, id int64) (*Lookup, error) {
	var out []Lookup
	if err := r.db.Select(ctx, Table, backend.Eq(KeyColumn, id), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &apperr.NotFoundError{Resource: "lookup", Key: strconv.FormatInt(id, 10)}
	}
	return &out[0], nil
}

func (r *repo) Create(ctx context.Context, l *Lookup) (int64, error) {
	row := *l
	row.ID = 0

	var out []Lookup
	if err := r.db.Insert(ctx, Table, row, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, &apperr.OperationError{Op: "insert " + Table, Message: "backend returned no row"}
	}
	return out[0].ID, nil
}

func (r *repo) Update(ctx context.Context, l *Lookup) (int64, error) {
	var out []Lookup
	if err := r.db.Update(ctx, Table, backend.Eq(KeyColumn, l.ID), l, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, &apperr.NotFoundError{Resource: "lookup", Key: strconv.FormatInt(l.ID, 10)}
	}
	return out[0].ID, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.db.Delete(ctx, Table, backend.Eq(KeyColumn, id))
}
