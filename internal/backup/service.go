package backup

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/bundle"
)

// FileSuffix ends the name of every snapshot file.
const FileSuffix = "_sbtexport.json.gz"

const timeLayout = "2006-01-02_15.04.05"

type Service struct {
	bundle *bundle.Service
	dir    string
	now    func() time.Time
}

func NewService(b *bundle.Service, dir string) *Service {
	return &Service{
		bundle: b,
		dir:    dir,
		now:    time.Now,
	}
}

// BackupResult contains information about a completed backup
type BackupResult struct {
	Filename string         `json:"filename"`
	Path     string         `json:"path"`
	Size     int64          `json:"size"`
	Rows     map[string]int `json:"rows"`
}

// CreateBackup exports every table and writes the document gzip-compressed
// into the backup directory.
func (s *Service) CreateBackup(ctx context.Context) (*BackupResult, error) {
	doc, err := s.bundle.Export(ctx)
	if err != nil {
		return nil, err
	}

	// Create backup directory if it doesn't exist
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	// Generate timestamped filename
	timestamp := s.now().Format(timeLayout)
	filename := timestamp + FileSuffix
	backupPath := filepath.Join(s.dir, filename)

	// Write to a temp file first so a failed backup leaves no partial snapshot
	tempPath := backupPath + ".tmp"
	defer os.Remove(tempPath)

	file, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("create backup file: %w", err)
	}

	gzWriter := gzip.NewWriter(file)
	if err := doc.Encode(gzWriter); err != nil {
		file.Close()
		return nil, fmt.Errorf("write gzip data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		file.Close()
		return nil, fmt.Errorf("close gzip writer: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("close backup file: %w", err)
	}
	if err := os.Rename(tempPath, backupPath); err != nil {
		return nil, fmt.Errorf("finalize backup file: %w", err)
	}

	// Get file size
	info, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("stat backup file: %w", err)
	}

	log.Info().Str("path", backupPath).Int64("size", info.Size()).Msg("snapshot written")

	return &BackupResult{
		Filename: filename,
		Path:     backupPath,
		Size:     info.Size(),
		Rows:     doc.Counts(),
	}, nil
}

// List returns the snapshot file names in the backup directory, newest first.
func (s *Service) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), FileSuffix) {
			names = append(names, e.Name())
		}
	}
	// timestamps sort lexically
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Path resolves a snapshot name from List to its file path. Anything but a
// timestamped snapshot file name is rejected.
func (s *Service) Path(name string) (string, error) {
	stamp, ok := strings.CutSuffix(name, FileSuffix)
	if _, err := time.Parse(timeLayout, stamp); !ok || err != nil || name != filepath.Base(name) {
		return "", &apperr.ValidationError{Problems: []string{fmt.Sprintf("invalid snapshot name %q", name)}}
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", &apperr.NotFoundError{Resource: "snapshot", Key: name}
		}
		return "", fmt.Errorf("stat snapshot: %w", err)
	}
	return path, nil
}
