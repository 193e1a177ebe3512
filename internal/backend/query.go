package backend

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query holds the row filters and modifiers of one table request. The zero
// value selects every row; methods return a copy.
type Query struct {
	params url.Values
}

// Eq returns a query matching rows whose col equals val.
func Eq(col string, val any) Query {
	return Query{}.Eq(col, val)
}

// OrderBy returns a query sorting ascending on col.
func OrderBy(col string) Query {
	return Query{}.Order(col)
}

// Columns restricts the selected columns to cols.
func (q Query) Columns(cols ...string) Query {
	return q.with("select", strings.Join(cols, ","))
}

func (q Query) Eq(col string, val any) Query {
	return q.with(col, "eq."+fmt.Sprint(val))
}

func (q Query) Order(col string) Query {
	return q.with("order", col+".asc")
}

func (q Query) Limit(n int) Query {
	return q.with("limit", strconv.Itoa(n))
}

func (q Query) with(key, value string) Query {
	p := url.Values{}
	for k, vs := range q.params {
		p[k] = append([]string(nil), vs...)
	}
	p.Set(key, value)
	return Query{params: p}
}

func (q Query) values() url.Values {
	p := url.Values{}
	for k, vs := range q.params {
		p[k] = append([]string(nil), vs...)
	}
	return p
}

func (q Query) has(key string) bool {
	_, ok := q.params[key]
	return ok
}
