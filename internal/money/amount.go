// Package money holds the numeric cell type used by the pricing and invoice
// columns.
//
// Cells arrive from the backend as JSON numbers, numeric strings, blank
// strings or null. A blank or null cell reads as zero and an unparseable one
// reads as zero flagged invalid, so one bad cell never fails a whole list.
// The stored text is kept and written back unchanged.
package money

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type Amount struct {
	value   decimal.Decimal
	text    string
	invalid bool
}

// New returns an Amount holding d, rendered in canonical form.
func New(d decimal.Decimal) Amount {
	return Amount{value: d}
}

func NewFromInt(n int64) Amount {
	return Amount{value: decimal.NewFromInt(n)}
}

// Parse reads s as stored text. A blank s is zero.
func Parse(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{text: s, invalid: true}
	}
	return Amount{value: d, text: s}
}

// RequireFromString is Parse that panics on text that is not a number.
func RequireFromString(s string) Amount {
	a := Parse(s)
	if a.invalid {
		panic("money: not a number: " + s)
	}
	return a
}

func (a Amount) Decimal() decimal.Decimal { return a.value }

// String returns the stored text when there is one, else the canonical form.
func (a Amount) String() string {
	if a.text != "" {
		return a.text
	}
	return a.value.String()
}

// Valid reports whether the cell held a number or nothing at all.
func (a Amount) Valid() bool { return !a.invalid }

func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool { return a.value.LessThan(b.value) }
func (a Amount) IsNegative() bool { return a.value.IsNegative() }
func (a Amount) InexactFloat64() float64 { return a.value.InexactFloat64() }

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Parse(s)
		return nil
	}
	*a = Parse(string(b))
	return nil
}
