package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

// ConsoleTables are the tables the console works with, in export order.
var ConsoleTables = []string{"invoices", "customers", "areas", "calculations", "lookup"}

// FakeBackend is an in-memory stand-in for the PostgREST table API. It
// understands eq filters, select column lists, order=<col>.asc, limit,
// on_conflict upserts and the return=representation preference.
type FakeBackend struct {
	URL string
	Key string

	mu       sync.Mutex
	tables   map[string]*fakeTable
	failing  map[string]bool
	requests int
	writes   int
}

type fakeTable struct {
	rows   []map[string]any
	nextID int64
}

// NewFakeBackend starts a fake backend accepting key and holding the given
// empty tables. Tables not listed answer 404 like an unprovisioned backend.
func NewFakeBackend(t *testing.T, key string, tables ...string) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		Key:     key,
		tables:  make(map[string]*fakeTable),
		failing: make(map[string]bool),
	}
	for _, name := range tables {
		f.tables[name] = &fakeTable{nextID: 1}
	}

	e := echo.New()
	e.HideBanner = true
	e.Any("/:table", f.handle)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	f.URL = srv.URL

	return f
}

// Seed stores rows directly, bypassing the API and the request counters.
func (f *FakeBackend) Seed(table string, rows ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tbl, ok := f.tables[table]
	if !ok {
		tbl = &fakeTable{nextID: 1}
		f.tables[table] = tbl
	}
	for _, row := range rows {
		tbl.insert(normalize(row))
	}
}

// Rows returns a copy of the rows stored in table.
func (f *FakeBackend) Rows(table string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	tbl, ok := f.tables[table]
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		out = append(out, clone(row))
	}
	return out
}

// FailWrites makes every write to table answer 500.
func (f *FakeBackend) FailWrites(table string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[table] = true
}

// Requests counts every request received.
func (f *FakeBackend) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

// Writes counts POST, PATCH and DELETE requests received.
func (f *FakeBackend) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *FakeBackend) handle(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests++
	req := c.Request()

	if req.Header.Get("apikey") != f.Key || req.Header.Get("Authorization") != "Bearer "+f.Key {
		return c.JSON(http.StatusUnauthorized, map[string]string{"code": "PGRST301", "message": "JWT invalid"})
	}

	name := c.Param("table")
	tbl, ok := f.tables[name]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{
			"code":    "PGRST205",
			"message": fmt.Sprintf("Could not find the table 'public.%s' in the schema cache", name),
		})
	}

	if req.Method != http.MethodGet {
		f.writes++
		if f.failing[name] {
			return c.JSON(http.StatusInternalServerError, map[string]string{"code": "XX000", "message": "simulated failure"})
		}
	}

	filters := eqFilters(c)
	representation := strings.Contains(req.Header.Get("Prefer"), "return=representation")

	switch req.Method {
	case http.MethodGet:
		rows := tbl.matching(filters)
		if col, ok := strings.CutSuffix(c.QueryParam("order"), ".asc"); ok {
			sortRows(rows, col)
		}
		if lim := c.QueryParam("limit"); lim != "" {
			if n, err := strconv.Atoi(lim); err == nil && n < len(rows) {
				rows = rows[:n]
			}
		}
		if sel := c.QueryParam("select"); sel != "" && sel != "*" {
			rows = project(rows, strings.Split(sel, ","))
		}
		return c.JSON(http.StatusOK, rows)

	case http.MethodPost:
		incoming, err := decodeRows(req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"code": "PGRST102", "message": err.Error()})
		}
		onConflict := c.QueryParam("on_conflict")

		// validate first so a rejected batch stores nothing
		for _, row := range incoming {
			if onConflict == "" && row["id"] != nil && tbl.find("id", row["id"]) >= 0 {
				return c.JSON(http.StatusConflict, map[string]string{"code": "23505", "message": "duplicate key value violates unique constraint"})
			}
		}

		stored := make([]map[string]any, 0, len(incoming))
		for _, row := range incoming {
			if onConflict != "" && row[onConflict] != nil {
				if idx := tbl.find(onConflict, row[onConflict]); idx >= 0 {
					for k, v := range row {
						tbl.rows[idx][k] = v
					}
					stored = append(stored, clone(tbl.rows[idx]))
					continue
				}
			}
			stored = append(stored, clone(tbl.insert(row)))
		}
		if representation {
			return c.JSON(http.StatusCreated, stored)
		}
		return c.NoContent(http.StatusCreated)

	case http.MethodPatch:
		var patch map[string]any
		dec := json.NewDecoder(req.Body)
		dec.UseNumber()
		if err := dec.Decode(&patch); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"code": "PGRST102", "message": err.Error()})
		}
		updated := make([]map[string]any, 0)
		for _, row := range tbl.rows {
			if matches(row, filters) {
				for k, v := range patch {
					row[k] = v
				}
				updated = append(updated, clone(row))
			}
		}
		if representation {
			return c.JSON(http.StatusOK, updated)
		}
		return c.NoContent(http.StatusNoContent)

	case http.MethodDelete:
		kept := tbl.rows[:0]
		for _, row := range tbl.rows {
			if !matches(row, filters) {
				kept = append(kept, row)
			}
		}
		tbl.rows = kept
		return c.NoContent(http.StatusNoContent)
	}

	return c.NoContent(http.StatusMethodNotAllowed)
}

func (t *fakeTable) insert(row map[string]any) map[string]any {
	row = clone(row)
	if row["id"] == nil {
		row["id"] = t.nextID
		t.nextID++
	} else if id, err := strconv.ParseInt(fmt.Sprint(row["id"]), 10, 64); err == nil && id >= t.nextID {
		t.nextID = id + 1
	}
	t.rows = append(t.rows, row)
	return row
}

func (t *fakeTable) find(col string, val any) int {
	want := fmt.Sprint(val)
	for i, row := range t.rows {
		if v, ok := row[col]; ok && fmt.Sprint(v) == want {
			return i
		}
	}
	return -1
}

func (t *fakeTable) matching(filters map[string]string) []map[string]any {
	out := make([]map[string]any, 0)
	for _, row := range t.rows {
		if matches(row, filters) {
			out = append(out, clone(row))
		}
	}
	return out
}

func eqFilters(c echo.Context) map[string]string {
	filters := make(map[string]string)
	for k, vs := range c.QueryParams() {
		switch k {
		case "select", "order", "limit", "on_conflict":
			continue
		}
		if len(vs) > 0 {
			if v, ok := strings.CutPrefix(vs[0], "eq."); ok {
				filters[k] = v
			}
		}
	}
	return filters
}

func matches(row map[string]any, filters map[string]string) bool {
	for col, want := range filters {
		v, ok := row[col]
		if !ok || fmt.Sprint(v) != want {
			return false
		}
	}
	return true
}

func project(rows []map[string]any, cols []string) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		p := make(map[string]any, len(cols))
		for _, col := range cols {
			if v, ok := row[col]; ok {
				p[col] = v
			}
		}
		out = append(out, p)
	}
	return out
}

func sortRows(rows []map[string]any, col string) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := fmt.Sprint(rows[i][col]), fmt.Sprint(rows[j][col])
		af, aerr := strconv.ParseFloat(a, 64)
		bf, berr := strconv.ParseFloat(b, 64)
		if aerr == nil && berr == nil {
			return af < bf
		}
		return a < b
	})
}

func decodeRows(req *http.Request) ([]map[string]any, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
		return nil, err
	}

	dec := func(v any) error {
		d := json.NewDecoder(strings.NewReader(string(raw)))
		d.UseNumber()
		return d.Decode(v)
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var rows []map[string]any
		if err := dec(&rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	var row map[string]any
	if err := dec(&row); err != nil {
		return nil, err
	}
	return []map[string]any{row}, nil
}

// normalize round-trips row through JSON so seeded values compare like
// values received over the wire.
func normalize(row map[string]any) map[string]any {
	b, err := json.Marshal(row)
	if err != nil {
		return clone(row)
	}
	d := json.NewDecoder(strings.NewReader(string(b)))
	d.UseNumber()
	var out map[string]any
	if err := d.Decode(&out); err != nil {
		return clone(row)
	}
	return out
}

func clone(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
