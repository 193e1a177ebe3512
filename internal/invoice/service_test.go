package invoice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
	"github.com/sbtransport/sbtconsole/internal/invoice"
	"github.com/sbtransport/sbtconsole/internal/memo"
	"github.com/sbtransport/sbtconsole/internal/money"
	"github.com/sbtransport/sbtconsole/internal/testutil"
)

func newService(t *testing.T, key string, tables ...string) (*invoice.Service, *testutil.FakeBackend) {
	t.Helper()
	fake := testutil.NewFakeBackend(t, "key", tables...)
	return invoice.NewService(backend.New(backend.Options{URL: fake.URL, AccessKey: key})), fake
}

func sample(memoNo string) *invoice.Invoice {
	return &invoice.Invoice{
		TripsMemoNo:  memoNo,
		TripsDate:    "2024-03-01",
		CustomerName: "Acme Logistics",
		VehicleType:  "Sedan",
		VehicleNo:    "TN01AB1234",
		Location:     "Chennai",
		StartKM:      money.NewFromInt(1000),
		EndKM:        money.NewFromInt(1120),
		TotalKM:      money.NewFromInt(120),
		TotalAmount:  money.RequireFromString("2450.75"),
	}
}

func TestInvoiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, "key", invoice.Table)

	created, err := svc.Create(ctx, sample("SBT-001"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.TotalAmount.Equal(money.RequireFromString("2450.75")) {
		t.Errorf("expected total 2450.75, got %s", created.TotalAmount)
	}

	created.TollParking = money.NewFromInt(80)
	if err := svc.Update(ctx, created); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.Get(ctx, "SBT-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.TollParking.Equal(money.NewFromInt(80)) {
		t.Errorf("expected toll 80, got %s", got.TollParking)
	}

	if err := svc.Delete(ctx, "SBT-001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, "SBT-001"); !apperr.IsNotFound(err) {
		t.Errorf("expected NotFoundError after delete, got %v", err)
	}
}

func TestCreateWithExistingMemoReplaces(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, "key", invoice.Table)

	if _, err := svc.Create(ctx, sample("SBT-004")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	second := sample("SBT-004")
	second.CustomerName = "Globex"
	if _, err := svc.Create(ctx, second); err != nil {
		t.Fatalf("second create: %v", err)
	}

	rows := fake.Rows(invoice.Table)
	if len(rows) != 1 {
		t.Fatalf("expected one stored invoice, got %d", len(rows))
	}
	if rows[0]["customer_name"] != "Globex" {
		t.Errorf("expected the later save to win, got %v", rows[0]["customer_name"])
	}
}

func TestCreateAllocatesMemo(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, "key", invoice.Table)
	fake.Seed(invoice.Table,
		map[string]any{"trips_memo_no": "SBT-001", "customer_name": "A"},
		map[string]any{"trips_memo_no": "SBT-007", "customer_name": "B"},
	)

	next, err := svc.NextMemo(ctx)
	if err != nil {
		t.Fatalf("next memo: %v", err)
	}
	if next != "SBT-008" {
		t.Errorf("expected SBT-008, got %s", next)
	}

	created, err := svc.Create(ctx, sample(""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TripsMemoNo != "SBT-008" {
		t.Errorf("expected allocated memo SBT-008, got %s", created.TripsMemoNo)
	}
}

func TestNextMemoSeedsWhenUnavailable(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		key    string
		tables []string
	}{
		{"no credential", "", []string{invoice.Table}},
		{"table not provisioned", "key", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, tt.key, tt.tables...)
			got, err := svc.NextMemo(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != memo.Seed {
				t.Errorf("expected %s, got %s", memo.Seed, got)
			}
		})
	}
}

func TestNextMemoReportsBackendFaults(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, "wrong", invoice.Table)
	fake.Seed(invoice.Table, map[string]any{"trips_memo_no": "SBT-001", "customer_name": "A"})

	got, err := svc.NextMemo(ctx)
	var ae *apperr.AuthenticationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthenticationError, got %q (%v)", got, err)
	}
	if got != "" {
		t.Errorf("expected no memo on failure, got %s", got)
	}
}

func TestNextMemoIgnoresMoneyColumns(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, "key", invoice.Table)
	fake.Seed(invoice.Table,
		map[string]any{"trips_memo_no": "SBT-001", "customer_name": "A", "total_km": "120"},
		map[string]any{"trips_memo_no": "SBT-002", "customer_name": "B", "total_km": "", "toll_parking": "n/a"},
	)

	next, err := svc.NextMemo(ctx)
	if err != nil {
		t.Fatalf("next memo: %v", err)
	}
	if next != "SBT-003" {
		t.Errorf("expected SBT-003, got %s", next)
	}
}

func TestGetAllToleratesBlankCells(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, "key", invoice.Table)
	fake.Seed(invoice.Table,
		map[string]any{"trips_memo_no": "SBT-001", "customer_name": "A", "total_km": "", "toll_parking": nil},
		map[string]any{"trips_memo_no": "SBT-002", "customer_name": "B", "total_amount": "2450.50"},
	)

	got, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(got))
	}
	if !got[0].TotalKM.Equal(money.NewFromInt(0)) || !got[0].TollParking.Equal(money.NewFromInt(0)) {
		t.Errorf("expected blank cells to read as zero, got %s and %s", got[0].TotalKM, got[0].TollParking)
	}
	if got[1].TotalAmount.String() != "2450.50" {
		t.Errorf("expected stored text 2450.50, got %s", got[1].TotalAmount)
	}
}

func TestFindByMemoAbsent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, "key", invoice.Table)

	got, err := svc.FindByMemo(ctx, "SBT-999")
	if err != nil || got != nil {
		t.Errorf("expected absent invoice, got %v (%v)", got, err)
	}
}

func TestInvoiceValidation(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, "key", invoice.Table)

	bad := sample("SBT-001")
	bad.CustomerName = ""
	bad.EndKM = money.NewFromInt(10)
	if err := svc.Update(ctx, bad); err == nil {
		t.Fatal("expected validation error")
	}
	if fake.Writes() != 0 {
		t.Errorf("expected no write, got %d", fake.Writes())
	}
}

func TestInvoiceRejectsNonNumericAmounts(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, "key", invoice.Table)

	bad := sample("SBT-001")
	bad.TollParking = money.Parse("n/a")
	err := svc.Update(ctx, bad)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || len(ve.Problems) != 1 || ve.Problems[0] != "toll_parking must be a number" {
		t.Fatalf("expected toll_parking validation error, got %v", err)
	}
	if fake.Writes() != 0 {
		t.Errorf("expected no write, got %d", fake.Writes())
	}
}

func TestInvoiceWriteWithoutCredential(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t, "", invoice.Table)

	_, err := svc.Create(ctx, sample(""))
	if !apperr.IsConfiguration(err) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
	if fake.Requests() != 0 {
		t.Errorf("expected no request, got %d", fake.Requests())
	}
}
