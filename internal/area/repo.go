package area

import (
	"context"
	"strconv"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Area, error)
	Get(ctx context.Context, id int64) (*Area, error)
	Create(ctx context.Context, a *Area) (int64, error)
	Update(ctx context.Context, a *Area) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct {
	db *backend.Client
}

func New(db *backend.Client) Repository {
	return &repo{db: db}
}

func notFound(id int64) error {
	return &apperr.NotFoundError{Resource: "area", Key: strconv.FormatInt(id, 10)}
}

func (r *repo) GetAll(ctx context.Context) ([]Area, error) {
	var out []Area
	err := r.db.Select(ctx, Table, backend.OrderBy(KeyColumn), &out)
	if apperr.DegradesToEmpty(err) {
		return []Area{}, nil
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Area{}
	}
	return out, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*Area, error) {
	var out []Area
	if err := r.db.Select(ctx, Table, backend.Eq(KeyColumn, id), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound(id)
	}
	return &out[0], nil
}

func (r *repo) Create(ctx context.Context, a *Area) (int64, error) {
	row := *a
	row.ID = 0

	var out []Area
	if err := r.db.Insert(ctx, Table, row, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, &apperr.OperationError{Op: "insert " + Table, Message: "backend returned no row"}
	}
	return out[0].ID, nil
}

func (r *repo) Update(ctx context.Context, a *Area) (int64, error) {
	var out []Area
	if err := r.db.Update(ctx, Table, backend.Eq(KeyColumn, a.ID), a, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, notFound(a.ID)
	}
	return out[0].ID, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.db.Delete(ctx, Table, backend.Eq(KeyColumn, id))
}
