package invoice

import (
	"context"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Invoice, error)
	FindByMemo(ctx context.Context, memo string) (*Invoice, error)
	MemoNumbers(ctx context.Context) ([]string, error)
	Create(ctx context.Context, inv *Invoice) (string, error)
	Update(ctx context.Context, inv *Invoice) (string, error)
	Delete(ctx context.Context, memo string) error
}

type repo struct {
	db *backend.Client
}

func New(db *backend.Client) Repository {
	return &repo{db: db}
}

func (r *repo) GetAll(ctx context.Context) ([]Invoice, error) {
	var out []Invoice
	err := r.db.Select(ctx, Table, backend.OrderBy(KeyColumn), &out)
	if apperr.DegradesToEmpty(err) {
		return []Invoice{}, nil
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Invoice{}
	}
	return out, nil
}

// MemoNumbers lists the memo number of every invoice and nothing else.
func (r *repo) MemoNumbers(ctx context.Context) ([]string, error) {
	var out []struct {
		TripsMemoNo string `json:"trips_memo_no"`
	}
	err := r.db.Select(ctx, Table, backend.Query{}.Columns(KeyColumn), &out)
	if apperr.DegradesToEmpty(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	memos := make([]string, 0, len(out))
	for _, row := range out {
		memos = append(memos, row.TripsMemoNo)
	}
	return memos, nil
}

// FindByMemo returns nil when no invoice carries memo.
func (r *repo) FindByMemo(ctx context.Context, memo string) (*Invoice, error) {
	var out []Invoice
	err := r.db.Select(ctx, Table, backend.Eq(KeyColumn, memo).Limit(1), &out)
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

func (r *repo) upsert(ctx context.Context, inv *Invoice) (string, error) {
	var out []Invoice
	if err := r.db.Upsert(ctx, Table, KeyColumn, inv, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return inv.TripsMemoNo, nil
	}
	return out[0].TripsMemoNo, nil
}

// Create writes inv, replacing any invoice with the same memo number.
func (r *repo) Create(ctx context.Context, inv *Invoice) (string, error) {
	return r.upsert(ctx, inv)
}

func (r *repo) Update(ctx context.Context, inv *Invoice) (string, error) {
	return r.upsert(ctx, inv)
}

func (r *repo) Delete(ctx context.Context, memo string) error {
	return r.db.Delete(ctx, Table, backend.Eq(KeyColumn, memo))
}
