package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/backend"
	"github.com/sbtransport/sbtconsole/internal/invoice"
)

type Service struct {
	db *backend.Client
}

func NewService(db *backend.Client) *Service {
	return &Service{db: db}
}

// TableResult is the number of rows written to one table by Import.
type TableResult struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

// Export reads every table. Tables that cannot be read for lack of a
// credential or provisioning export as empty.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	doc := NewDocument()
	for _, t := range Tables {
		rows, err := s.db.SelectRaw(ctx, t, backend.Query{})
		if apperr.DegradesToEmpty(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", t, err)
		}
		*doc.rows(t) = rows
	}
	return doc, nil
}

// Import validates raw as a whole and then writes it table by table. Nothing
// is written when validation fails or no credential is configured. The
// first table that fails stops the import with an *ImportError.
func (s *Service) Import(ctx context.Context, raw []byte) ([]TableResult, error) {
	plan, err := parse(raw)
	if err != nil {
		return nil, err
	}
	if err := s.db.RequireCredential("import"); err != nil {
		return nil, err
	}

	var results []TableResult
	var imported []string
	for _, t := range Tables {
		rows := plan[t]
		if len(rows) == 0 {
			continue
		}
		if err := s.importTable(ctx, t, rows); err != nil {
			log.Error().Err(err).Str("table", t).Strs("imported", imported).Msg("import stopped")
			return results, &ImportError{Table: t, Imported: imported, Err: err}
		}
		imported = append(imported, t)
		results = append(results, TableResult{Table: t, Rows: len(rows)})
		log.Info().Str("table", t).Int("rows", len(rows)).Msg("imported table")
	}
	return results, nil
}

func (s *Service) importTable(ctx context.Context, table string, rows []row) error {
	if table == invoice.Table {
		return s.db.Upsert(ctx, table, invoice.KeyColumn, raws(rows), nil)
	}

	var keyed, fresh []row
	for _, r := range rows {
		if r.hasNumericID() {
			keyed = append(keyed, r)
		} else {
			fresh = append(fresh, r)
		}
	}
	if len(keyed) > 0 {
		if err := s.db.Upsert(ctx, table, "id", raws(keyed), nil); err != nil {
			return err
		}
	}
	if len(fresh) > 0 {
		stripped := make([]any, 0, len(fresh))
		for _, r := range fresh {
			stripped = append(stripped, r.withoutID())
		}
		return s.db.Insert(ctx, table, stripped, nil)
	}
	return nil
}

// row is one document row with its fields split out for inspection.
type row struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

func (r row) hasNumericID() bool {
	v, ok := r.fields["id"]
	if !ok {
		return false
	}
	_, err := strconv.ParseInt(string(bytes.TrimSpace(v)), 10, 64)
	return err == nil
}

// withoutID drops a null or non-numeric id so the backend assigns one.
func (r row) withoutID() any {
	if _, ok := r.fields["id"]; !ok {
		return r.raw
	}
	fields := make(map[string]json.RawMessage, len(r.fields))
	for k, v := range r.fields {
		if k != "id" {
			fields[k] = v
		}
	}
	return fields
}

func (r row) stringField(name string) (string, bool) {
	v, ok := r.fields[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, s != ""
}

func raws(rows []row) []json.RawMessage {
	out := make([]json.RawMessage, len(rows))
	for i, r := range rows {
		out[i] = r.raw
	}
	return out
}

// parse checks the whole document before anything is written and reports
// every problem found.
func parse(raw []byte) (map[string][]row, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return nil, &apperr.ValidationError{Problems: []string{"document is not a JSON object"}}
	}

	var problems []string
	plan := make(map[string][]row, len(Tables))
	for _, t := range Tables {
		v, ok := top[t]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing key %q", t))
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil || items == nil {
			problems = append(problems, fmt.Sprintf("%q must be an array", t))
			continue
		}

		rows := make([]row, 0, len(items))
		for i, item := range items {
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
				problems = append(problems, fmt.Sprintf("%s[%d] must be an object", t, i))
				continue
			}
			r := row{raw: item, fields: fields}
			if t == invoice.Table {
				if _, ok := r.stringField(invoice.KeyColumn); !ok {
					problems = append(problems, fmt.Sprintf("%s[%d]: %s is required", t, i, invoice.KeyColumn))
				}
			}
			rows = append(rows, r)
		}
		plan[t] = rows
	}

	for k := range top {
		if !slices.Contains(Tables, k) {
			log.Warn().Str("key", k).Msg("ignoring unknown key in import document")
		}
	}

	if len(problems) > 0 {
		return nil, &apperr.ValidationError{Problems: problems}
	}
	return plan, nil
}
