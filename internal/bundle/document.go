package bundle

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sbtransport/sbtconsole/internal/area"
	"github.com/sbtransport/sbtconsole/internal/calculation"
	"github.com/sbtransport/sbtconsole/internal/customer"
	"github.com/sbtransport/sbtconsole/internal/invoice"
	"github.com/sbtransport/sbtconsole/internal/lookup"
)

// Tables lists the tables a document carries, in document order.
var Tables = []string{invoice.Table, customer.Table, area.Table, calculation.Table, lookup.Table}

// Document is the export format: every table's rows exactly as the backend
// stored them.
type Document struct {
	Invoices     []json.RawMessage `json:"invoices"`
	Customers    []json.RawMessage `json:"customers"`
	Areas        []json.RawMessage `json:"areas"`
	Calculations []json.RawMessage `json:"calculations"`
	Lookup       []json.RawMessage `json:"lookup"`
}

// NewDocument returns a document with every table present and empty.
func NewDocument() *Document {
	d := &Document{}
	for _, t := range Tables {
		*d.rows(t) = []json.RawMessage{}
	}
	return d
}

func (d *Document) rows(table string) *[]json.RawMessage {
	switch table {
	case invoice.Table:
		return &d.Invoices
	case customer.Table:
		return &d.Customers
	case area.Table:
		return &d.Areas
	case calculation.Table:
		return &d.Calculations
	case lookup.Table:
		return &d.Lookup
	}
	panic("bundle: unknown table " + table)
}

// Rows returns the rows held for table.
func (d *Document) Rows(table string) []json.RawMessage {
	return *d.rows(table)
}

// Counts returns the number of rows per table.
func (d *Document) Counts() map[string]int {
	counts := make(map[string]int, len(Tables))
	for _, t := range Tables {
		counts[t] = len(d.Rows(t))
	}
	return counts
}

// Encode writes d as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// ReadDocument reads an export file, gunzipping it when the name ends in .gz.
// The bytes are returned undecoded so Import can validate them.
func ReadDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip document: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress document: %w", err)
	}
	return out, nil
}
