// Package backend talks to the hosted data store through its PostgREST style
// table API. Every call is a single round trip: no retries, no caching.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sbtransport/sbtconsole/internal/apperr"
)

// Status is the provisioning state of a backend table.
type Status int

const (
	StatusUnknown Status = iota
	Provisioned
	NotProvisioned
)

func (s Status) String() string {
	switch s {
	case Provisioned:
		return "provisioned"
	case NotProvisioned:
		return "not provisioned"
	default:
		return "unknown"
	}
}

// Options configures a Client.
type Options struct {
	URL       string
	AccessKey string
	// Timeout bounds each request; zero leaves it to the transport.
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

// New returns a client bound to one credential for its whole lifetime. An
// empty AccessKey is allowed: every call then fails with
// *apperr.ConfigurationError before touching the network.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(opts.URL, "/"),
		key:     opts.AccessKey,
		http:    hc,
	}
}

// Configured reports whether the client holds a credential.
func (c *Client) Configured() bool {
	return c.key != ""
}

// RequireCredential returns a *apperr.ConfigurationError for op when the
// client has no credential.
func (c *Client) RequireCredential(op string) error {
	if c.key == "" {
		return &apperr.ConfigurationError{Op: op}
	}
	return nil
}

// Select decodes the rows of table matching q into dest. Every column is
// selected unless q names its own with Columns.
func (c *Client) Select(ctx context.Context, table string, q Query, dest any) error {
	if !q.has("select") {
		q = q.with("select", "*")
	}
	return c.do(ctx, "select "+table, http.MethodGet, table, q, nil, nil, dest)
}

// SelectRaw returns the rows of table exactly as the backend sent them.
func (c *Client) SelectRaw(ctx context.Context, table string, q Query) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := c.Select(ctx, table, q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}

// Insert adds rows (a struct, a map or a slice of them) and decodes the
// stored rows into dest when dest is not nil.
func (c *Client) Insert(ctx context.Context, table string, rows any, dest any) error {
	return c.do(ctx, "insert "+table, http.MethodPost, table, Query{}, rows, preferReturn(dest), dest)
}

// Upsert inserts rows, merging into the existing row when onConflict
// matches.
func (c *Client) Upsert(ctx context.Context, table, onConflict string, rows any, dest any) error {
	prefer := append([]string{"resolution=merge-duplicates"}, preferReturn(dest)...)
	q := Query{}.with("on_conflict", onConflict)
	return c.do(ctx, "upsert "+table, http.MethodPost, table, q, rows, prefer, dest)
}

// Update patches every row matching q.
func (c *Client) Update(ctx context.Context, table string, q Query, patch any, dest any) error {
	return c.do(ctx, "update "+table, http.MethodPatch, table, q, patch, preferReturn(dest), dest)
}

// Delete removes every row matching q.
func (c *Client) Delete(ctx context.Context, table string, q Query) error {
	return c.do(ctx, "delete "+table, http.MethodDelete, table, q, nil, nil, nil)
}

// TableStatus asks the backend whether table exists. The answer comes from
// the PostgREST error code, never from the error text.
func (c *Client) TableStatus(ctx context.Context, table string) (Status, error) {
	q := Query{}.with("select", "*").Limit(0)
	err := c.do(ctx, "status "+table, http.MethodGet, table, q, nil, nil, nil)
	switch {
	case err == nil:
		return Provisioned, nil
	case apperr.IsNotProvisioned(err):
		return NotProvisioned, nil
	default:
		return StatusUnknown, err
	}
}

func preferReturn(dest any) []string {
	if dest == nil {
		return []string{"return=minimal"}
	}
	return []string{"return=representation"}
}

func (c *Client) tableURL(table string, q Query) string {
	u := c.baseURL + "/" + url.PathEscape(table)
	if enc := q.values().Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func (c *Client) do(ctx context.Context, op, method, table string, q Query, body any, prefer []string, dest any) error {
	if err := c.RequireCredential(op); err != nil {
		return err
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &apperr.OperationError{Op: op, Message: "encode request: " + err.Error(), Err: err}
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.tableURL(table, q), rdr)
	if err != nil {
		return &apperr.OperationError{Op: op, Message: "build request: " + err.Error(), Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(prefer) > 0 {
		req.Header.Set("Prefer", strings.Join(prefer, ","))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("op", op).Str("request_id", requestID).Msg("backend request failed")
		return &apperr.OperationError{Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperr.OperationError{Op: op, Message: "read response: " + err.Error(), Err: err}
	}

	log.Debug().
		Str("op", op).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode >= http.StatusBadRequest {
		return translate(op, table, resp.StatusCode, data)
	}

	if dest == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &apperr.OperationError{Op: op, Message: "decode response: " + err.Error(), Err: err}
	}
	return nil
}

// backendError is the error body PostgREST sends.
type backendError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Codes PostgREST and PostgreSQL use for an unknown relation.
const (
	codeSchemaCacheMiss = "PGRST205"
	codeUndefinedTable  = "42P01"
)

func translate(op, table string, status int, body []byte) error {
	var be backendError
	_ = json.Unmarshal(body, &be)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &apperr.AuthenticationError{Op: op, Status: status}
	case be.Code == codeSchemaCacheMiss || be.Code == codeUndefinedTable:
		return apperr.NotProvisioned(op, table)
	case status == http.StatusNotFound:
		// a table API always names the missing relation; a bare 404 is a wrong URL
		log.Warn().Str("op", op).Msg("backend answered 404 without an error code; check backend.url")
	}

	msg := be.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if be.Details != "" {
		msg += " (" + be.Details + ")"
	}
	return &apperr.OperationError{Op: op, Message: fmt.Sprintf("%s [status %d]", msg, status)}
}
