package backup_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
	"github.com/sbtransport/sbtconsole/internal/backup"
	"github.com/sbtransport/sbtconsole/internal/bundle"
	"github.com/sbtransport/sbtconsole/internal/testutil"
)

func TestBackupService(t *testing.T) {
	ctx := context.Background()

	fake := testutil.NewFakeBackend(t, "key", testutil.ConsoleTables...)
	fake.Seed("customers", map[string]any{"name": "Test Customer"})
	fake.Seed("invoices", map[string]any{"trips_memo_no": "SBT-001", "customer_name": "Test Customer"})

	bundleSvc := bundle.NewService(backend.New(backend.Options{URL: fake.URL, AccessKey: "key"}))
	backupDir := filepath.Join(t.TempDir(), "backups")
	svc := backup.NewService(bundleSvc, backupDir)
	svc.SetClock(func() time.Time { return time.Date(2024, 3, 1, 9, 30, 15, 0, time.UTC) })

	result, err := svc.CreateBackup(ctx)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Verify result fields
	if result.Filename != "2024-03-01_09.30.15_sbtexport.json.gz" {
		t.Errorf("unexpected filename %q", result.Filename)
	}
	if result.Path != filepath.Join(backupDir, result.Filename) {
		t.Errorf("unexpected path %q", result.Path)
	}
	if result.Size <= 0 {
		t.Errorf("expected positive size, got %d", result.Size)
	}
	if result.Rows["customers"] != 1 || result.Rows["invoices"] != 1 {
		t.Errorf("unexpected row counts %v", result.Rows)
	}

	// Verify file exists and no temp file is left
	if _, err := os.Stat(result.Path); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if _, err := os.Stat(result.Path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("expected temp file to be removed")
	}

	// The snapshot reads back as an import document
	raw, err := bundle.ReadDocument(result.Path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if !strings.Contains(string(raw), `"SBT-001"`) {
		t.Errorf("expected snapshot to contain the invoice")
	}

	restored := testutil.NewFakeBackend(t, "key", testutil.ConsoleTables...)
	target := bundle.NewService(backend.New(backend.Options{URL: restored.URL, AccessKey: "key"}))
	if _, err := target.Import(ctx, raw); err != nil {
		t.Fatalf("import snapshot: %v", err)
	}
	if len(restored.Rows("customers")) != 1 {
		t.Errorf("expected customer to be restored")
	}
}

func TestBackupList(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeBackend(t, "key", testutil.ConsoleTables...)
	bundleSvc := bundle.NewService(backend.New(backend.Options{URL: fake.URL, AccessKey: "key"}))

	backupDir := t.TempDir()
	svc := backup.NewService(bundleSvc, backupDir)

	names, err := svc.List()
	if err != nil {
		t.Fatalf("list empty dir: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no snapshots, got %v", names)
	}

	for _, ts := range []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	} {
		svc.SetClock(func() time.Time { return ts })
		if _, err := svc.CreateBackup(ctx); err != nil {
			t.Fatalf("backup: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(backupDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err = svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2024-02-01_00.00.00_sbtexport.json.gz", "2024-01-01_00.00.00_sbtexport.json.gz"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("expected %v, got %v", want, names)
	}

	if p, err := svc.Path(want[0]); err != nil || p != filepath.Join(backupDir, want[0]) {
		t.Errorf("unexpected path %q (%v)", p, err)
	}
}

func TestBackupPathRejectsOtherNames(t *testing.T) {
	svc := backup.NewService(nil, t.TempDir())

	tests := []struct {
		name     string
		input    string
		notFound bool
	}{
		{"parent directory", "../x", false},
		{"traversal with suffix", "../2024-01-01_00.00.00" + backup.FileSuffix, false},
		{"not a snapshot", "notes.txt", false},
		{"bad timestamp", "latest" + backup.FileSuffix, false},
		{"empty", "", false},
		{"missing snapshot", "2024-01-01_00.00.00" + backup.FileSuffix, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Path(tt.input)
			if tt.notFound {
				if !apperr.IsNotFound(err) {
					t.Errorf("expected NotFoundError, got %v", err)
				}
				return
			}
			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestBackupWithoutCredentialWritesEmptySnapshot(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeBackend(t, "key", testutil.ConsoleTables...)
	bundleSvc := bundle.NewService(backend.New(backend.Options{URL: fake.URL}))
	svc := backup.NewService(bundleSvc, t.TempDir())

	result, err := svc.CreateBackup(ctx)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	for table, n := range result.Rows {
		if n != 0 {
			t.Errorf("expected no rows for %s, got %d", table, n)
		}
	}
}
