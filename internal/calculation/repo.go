package calculation

import (
	"context"
	"strconv"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Calculation, error)
	Get(ctx context.Context, id int64) (*Calculation, error)
	FindByKey(ctx context.Context, key string) (*Calculation, error)
	Create(ctx context.Context, c *Calculation) (int64, error)
	Update(ctx context.Context, c *Calculation) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct {
	db *backend.Client
}

func New(db *backend.Client) Repository {
	return &repo{db: db}
}

func (r *repo) GetAll(ctx context.Context) ([]Calculation, error) {
	var out []Calculation
	err := r.db.Select(ctx, Table, backend.OrderBy(KeyColumn), &out)
	if apperr.DegradesToEmpty(err) {
		return []Calculation{}, nil
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Calculation{}
	}
	return out, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*Calculation, error) {
	var out []Calculation
	if err := r.db.Select(ctx, Table, backend.Eq(KeyColumn, id), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &apperr.NotFoundError{Resource: "calculation", Key: strconv.FormatInt(id, 10)}
	}
	return &out[0], nil
}

// FindByKey returns the calculation whose products_type_category equals key
// exactly, or nil when there is none.
func (r *repo) FindByKey(ctx context.Context, key string) (*Calculation, error) {
	var out []Calculation
	err := r.db.Select(ctx, Table, backend.Eq(LookupColumn, key).Order(KeyColumn).Limit(1), &out)
	if apperr.DegradesToEmpty(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *repo) Create(ctx context.Context, c *Calculation) (int64, error) {
	row := *c
	row.ID = 0

	var out []Calculation
	if err := r.db.Insert(ctx, Table, row, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, &apperr.OperationError{Op: "insert " + Table, Message: "backend returned no row"}
	}
	return out[0].ID, nil
}

func (r *repo) Update(ctx context.Context, c *Calculation) (int64, error) {
	var out []Calculation
	if err := r.db.Update(ctx, Table, backend.Eq(KeyColumn, c.ID), c, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, &apperr.NotFoundError{Resource: "calculation", Key: strconv.FormatInt(c.ID, 10)}
	}
	return out[0].ID, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.db.Delete(ctx, Table, backend.Eq(KeyColumn, id))
}
