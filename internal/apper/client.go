// Package apper contains the HTTP client for the Apper table service — the
// remote backend-as-a-service that owns every record. Each resource access
// goes through the TableAPI interface so the service layer can be
// unit-tested with a mock instead of a live project.
// No business logic lives here — only transport and wire-shape mapping.
package apper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
)

// defaultTimeout bounds every remote call. The table service answers in
// well under a second when healthy; anything slower is treated as a
// transport failure rather than left hanging.
const defaultTimeout = 10 * time.Second

// PagingInfo selects one window of a fetch. The service layer always asks
// for a single fixed window (limit 1000, offset 0); the type still carries
// both values because the wire contract does.
type PagingInfo struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// FetchParams are the options for a multi-record fetch.
// Fields is an explicit allow-list of wire field names; the table service
// rejects wildcard projections.
type FetchParams struct {
	Fields     []string
	PagingInfo *PagingInfo
}

// GetParams are the options for a single-record fetch by id.
type GetParams struct {
	Fields []string
}

// FetchResponse is the wire shape of a multi-record read.
type FetchResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    []Record `json:"data,omitempty"`
}

// RecordResponse is the wire shape of a single-record read.
type RecordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data,omitempty"`
}

// WriteResponse is the wire shape of a create, update, or delete.
// Results holds one entry per requested record, in request order, even for
// single-record batches. A response can be partially successful: Success
// true at the top with individual entries failed.
type WriteResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Results []Result `json:"results,omitempty"`
}

// Result is the per-record outcome inside a WriteResponse.
type Result struct {
	Success bool         `json:"success"`
	Data    Record       `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is the wire shape of one field-level validation message.
type FieldError struct {
	FieldLabel string `json:"fieldLabel"`
	Message    string `json:"message"`
}

// TableAPI defines the record operations of the Apper table service.
// The concrete implementation is Client; service tests substitute a mock.
type TableAPI interface {
	// FetchRecords returns one window of records from the named table.
	FetchRecords(ctx context.Context, table string, params FetchParams) (*FetchResponse, error)

	// GetRecordByID returns a single record by its integer id.
	GetRecordByID(ctx context.Context, table string, id int, params GetParams) (*RecordResponse, error)

	// CreateRecord inserts the given records as one batch.
	CreateRecord(ctx context.Context, table string, records []Record) (*WriteResponse, error)

	// UpdateRecord overwrites the given records as one batch. Each record
	// must carry its "Id" field.
	UpdateRecord(ctx context.Context, table string, records []Record) (*WriteResponse, error)

	// DeleteRecord removes the records with the given ids as one batch.
	DeleteRecord(ctx context.Context, table string, ids []int) (*WriteResponse, error)
}

// FunctionAPI defines serverless function invocation on the Apper platform.
type FunctionAPI interface {
	// InvokeFunction calls the named function with a JSON payload and
	// decodes the JSON response into result.
	InvokeFunction(ctx context.Context, name string, payload any, result any) error
}

// Client is the HTTP implementation of TableAPI and FunctionAPI.
// Construct it once in main and pass it down — there is no package-level
// singleton, so tests can build one against an httptest server.
type Client struct {
	http      *http.Client
	baseURL   string
	projectID string
	publicKey string
}

// New constructs a Client for the project identified by projectID,
// authenticating every request with publicKey. baseURL is the platform
// endpoint without a trailing slash, e.g. "https://api.apper.io".
func New(baseURL, projectID, publicKey string) *Client {
	return &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		baseURL:   baseURL,
		projectID: projectID,
		publicKey: publicKey,
	}
}

// fieldSpec is the wire encoding of one projected field:
// {"field":{"Name":"email_c"}}.
type fieldSpec struct {
	Field fieldName `json:"field"`
}

type fieldName struct {
	Name string `json:"Name"`
}

func encodeFields(names []string) []fieldSpec {
	specs := make([]fieldSpec, len(names))
	for i, n := range names {
		specs[i] = fieldSpec{Field: fieldName{Name: n}}
	}
	return specs
}

// FetchRecords returns one window of records from the named table.
func (c *Client) FetchRecords(ctx context.Context, table string, params FetchParams) (*FetchResponse, error) {
	body := map[string]any{"fields": encodeFields(params.Fields)}
	if params.PagingInfo != nil {
		body["pagingInfo"] = params.PagingInfo
	}

	var resp FetchResponse
	if err := c.post(ctx, c.tablePath(table, "fetch"), body, &resp); err != nil {
		return nil, fmt.Errorf("apper.Client.FetchRecords: %w", err)
	}
	return &resp, nil
}

// GetRecordByID returns a single record by its integer id.
func (c *Client) GetRecordByID(ctx context.Context, table string, id int, params GetParams) (*RecordResponse, error) {
	body := map[string]any{"fields": encodeFields(params.Fields)}

	path := c.tablePath(table, strconv.Itoa(id)+"/fetch")
	var resp RecordResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return nil, fmt.Errorf("apper.Client.GetRecordByID: %w", err)
	}
	return &resp, nil
}

// CreateRecord inserts the given records as one batch.
func (c *Client) CreateRecord(ctx context.Context, table string, records []Record) (*WriteResponse, error) {
	var resp WriteResponse
	body := map[string]any{"records": records}
	if err := c.post(ctx, c.tablePath(table, "create"), body, &resp); err != nil {
		return nil, fmt.Errorf("apper.Client.CreateRecord: %w", err)
	}
	return &resp, nil
}

// UpdateRecord overwrites the given records as one batch.
func (c *Client) UpdateRecord(ctx context.Context, table string, records []Record) (*WriteResponse, error) {
	var resp WriteResponse
	body := map[string]any{"records": records}
	if err := c.post(ctx, c.tablePath(table, "update"), body, &resp); err != nil {
		return nil, fmt.Errorf("apper.Client.UpdateRecord: %w", err)
	}
	return &resp, nil
}

// DeleteRecord removes the records with the given ids as one batch.
// The wire field is "RecordIds" — capitalised, unlike every other key.
func (c *Client) DeleteRecord(ctx context.Context, table string, ids []int) (*WriteResponse, error) {
	var resp WriteResponse
	body := map[string]any{"RecordIds": ids}
	if err := c.post(ctx, c.tablePath(table, "delete"), body, &resp); err != nil {
		return nil, fmt.Errorf("apper.Client.DeleteRecord: %w", err)
	}
	return &resp, nil
}

// InvokeFunction calls the named serverless function and decodes its JSON
// response into result.
func (c *Client) InvokeFunction(ctx context.Context, name string, payload any, result any) error {
	path := "/api/v1/functions/" + url.PathEscape(name) + "/invoke"
	if err := c.post(ctx, path, payload, result); err != nil {
		return fmt.Errorf("apper.Client.InvokeFunction: %w", err)
	}
	return nil
}

func (c *Client) tablePath(table, op string) string {
	return "/api/v1/tables/" + url.PathEscape(table) + "/records/" + op
}

// post issues one authenticated JSON round trip. Every failure mode —
// request build, network, non-2xx status, undecodable body — comes back
// wrapped in domain.ErrTransport so callers can treat them uniformly.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domain.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Apper-Project-Id", c.projectID)
	req.Header.Set("X-Apper-Public-Key", c.publicKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return fmt.Errorf("%w: unexpected status %d", domain.ErrTransport, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrTransport, err)
	}
	return nil
}

// compile-time checks: Client must satisfy both API surfaces.
var (
	_ TableAPI    = (*Client)(nil)
	_ FunctionAPI = (*Client)(nil)
)
