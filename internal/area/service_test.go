package area_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/area"
	"github.com/sbtransport/sbtconsole/internal/backend"
	"github.com/sbtransport/sbtconsole/internal/testutil"
)

func newService(t *testing.T, tables ...string) (*area.Service, *testutil.FakeBackend) {
	t.Helper()
	fake := testutil.NewFakeBackend(t, "key", tables...)
	return area.NewService(backend.New(backend.Options{URL: fake.URL, AccessKey: "key"})), fake
}

func TestAreaLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, area.Table)

	created, err := svc.Create(ctx, &area.Area{Location: "Chennai", LocationCategory: "L"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Location != "Chennai" {
		t.Fatalf("unexpected created area %+v", created)
	}

	created.LocationCategory = "M"
	if err := svc.Update(ctx, created); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LocationCategory != "M" {
		t.Errorf("expected category M, got %q", got.LocationCategory)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no areas after delete, got %d", len(all))
	}
}

func TestAreaGetAllOrdersByID(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, area.Table)
	fake.Seed(area.Table,
		map[string]any{"id": 3, "location": "Madurai", "location_category": "S"},
		map[string]any{"id": 1, "location": "Chennai", "location_category": "L"},
		map[string]any{"id": 2, "location": "Vellore", "location_category": "M"},
	)

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	want := []string{"Chennai", "Vellore", "Madurai"}
	if len(all) != len(want) {
		t.Fatalf("expected %d areas, got %d", len(want), len(all))
	}
	for i, w := range want {
		if all[i].Location != w {
			t.Errorf("position %d: expected %q, got %q", i, w, all[i].Location)
		}
	}
}

func TestAreaValidation(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, area.Table)

	_, err := svc.Create(ctx, &area.Area{})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Problems) != 2 {
		t.Errorf("expected 2 problems, got %v", ve.Problems)
	}
	if fake.Requests() != 0 {
		t.Errorf("expected no request, got %d", fake.Requests())
	}
}

func TestAreaTableNotProvisioned(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	all, err := svc.GetAll(ctx)
	if err != nil || len(all) != 0 {
		t.Errorf("expected empty list without error, got %v (%v)", all, err)
	}

	_, err = svc.Create(ctx, &area.Area{Location: "Chennai", LocationCategory: "L"})
	if !apperr.IsNotProvisioned(err) {
		t.Errorf("expected not provisioned error on write, got %v", err)
	}
}
