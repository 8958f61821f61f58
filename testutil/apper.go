// Package testutil provides shared helpers for integration-style tests.
// Its centerpiece is FakeApper, an in-memory stand-in for the remote Apper
// table service, so service and client code can be exercised end to end
// without a live project.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/apper-canvas/contact-haptic-matrix/internal/apper"
)

// FakeApper serves the Apper table wire protocol from process memory.
// It implements the same success/results envelope as the real platform:
// reads answer {success, data}, writes answer {success, results[]} with
// one entry per requested record.
type FakeApper struct {
	mu     sync.Mutex
	tables map[string]*fakeTable

	// ActorID is stamped into CreatedBy on every created record, standing
	// in for the identity the real platform derives from its session.
	ActorID string

	// Functions maps function names to invocation handlers. Unregistered
	// functions answer 404, which clients must treat as a transport
	// failure.
	Functions map[string]func(payload map[string]any) any

	srv *httptest.Server
}

type fakeTable struct {
	rows  map[int]map[string]any
	order []int
	next  int
}

// NewFakeApper starts a FakeApper on an httptest server.
// The server is closed automatically when the test finishes.
func NewFakeApper(t *testing.T) *FakeApper {
	t.Helper()

	f := &FakeApper{
		tables:    map[string]*fakeTable{},
		ActorID:   "user-1",
		Functions: map[string]func(payload map[string]any) any{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the base URL of the fake server.
func (f *FakeApper) URL() string { return f.srv.URL }

// NewClient returns an apper.Client pointed at the fake server.
func (f *FakeApper) NewClient() *apper.Client {
	return apper.New(f.srv.URL, "test-project", "test-key")
}

// Seed inserts a record directly into a table, bypassing the wire
// protocol, and returns its assigned id. Use it to arrange state owned by
// another user.
func (f *FakeApper) Seed(table string, fields map[string]any) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	tbl := f.table(table)
	id := tbl.next
	tbl.next++

	row := map[string]any{"Id": float64(id)}
	for k, v := range fields {
		row[k] = v
	}
	tbl.rows[id] = row
	tbl.order = append(tbl.order, id)
	return id
}

// Row returns a copy of the stored record, or nil when absent.
// Tests use it to assert on the exact wire-shape values the service wrote.
func (f *FakeApper) Row(table string, id int) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.table(table).rows[id]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// table returns the named table, creating it on first use.
// Callers must hold f.mu.
func (f *FakeApper) table(name string) *fakeTable {
	tbl, ok := f.tables[name]
	if !ok {
		tbl = &fakeTable{rows: map[int]map[string]any{}, next: 1}
		f.tables[name] = tbl
	}
	return tbl
}

func (f *FakeApper) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	// /api/v1/functions/{name}/invoke
	if len(parts) == 5 && parts[2] == "functions" && parts[4] == "invoke" {
		f.handleFunction(w, r, parts[3])
		return
	}

	// /api/v1/tables/{table}/records/{op...}
	if len(parts) < 5 || parts[2] != "tables" || parts[4] != "records" {
		http.NotFound(w, r)
		return
	}
	table := parts[3]
	op := strings.Join(parts[5:], "/")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case op == "fetch":
		f.fetch(w, table, body)
	case op == "create":
		f.create(w, table, body)
	case op == "update":
		f.update(w, table, body)
	case op == "delete":
		f.delete(w, table, body)
	case strings.HasSuffix(op, "/fetch"):
		id, err := strconv.Atoi(strings.TrimSuffix(op, "/fetch"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		f.getByID(w, table, id)
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeApper) handleFunction(w http.ResponseWriter, r *http.Request, name string) {
	fn, ok := f.Functions[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, fn(payload))
}

func (f *FakeApper) fetch(w http.ResponseWriter, table string, body map[string]any) {
	tbl := f.table(table)

	limit := len(tbl.order)
	if paging, ok := body["pagingInfo"].(map[string]any); ok {
		if l, ok := paging["limit"].(float64); ok && int(l) < limit {
			limit = int(l)
		}
	}

	data := make([]map[string]any, 0, limit)
	for _, id := range tbl.order {
		if len(data) == limit {
			break
		}
		data = append(data, tbl.rows[id])
	}
	writeJSON(w, map[string]any{"success": true, "data": data})
}

func (f *FakeApper) getByID(w http.ResponseWriter, table string, id int) {
	row, ok := f.table(table).rows[id]
	if !ok {
		writeJSON(w, map[string]any{"success": false, "message": fmt.Sprintf("Record %d does not exist", id)})
		return
	}
	writeJSON(w, map[string]any{"success": true, "data": row})
}

func (f *FakeApper) create(w http.ResponseWriter, table string, body map[string]any) {
	records, _ := body["records"].([]any)
	tbl := f.table(table)

	results := make([]map[string]any, 0, len(records))
	for _, raw := range records {
		fields, ok := raw.(map[string]any)
		if !ok {
			results = append(results, map[string]any{"success": false, "message": "malformed record"})
			continue
		}

		id := tbl.next
		tbl.next++

		row := map[string]any{
			"Id":        float64(id),
			"CreatedBy": f.ActorID,
			"CreatedOn": time.Now().UTC().Format(time.RFC3339),
		}
		for k, v := range fields {
			row[k] = v
		}
		tbl.rows[id] = row
		tbl.order = append(tbl.order, id)
		results = append(results, map[string]any{"success": true, "data": row})
	}
	writeJSON(w, map[string]any{"success": true, "results": results})
}

func (f *FakeApper) update(w http.ResponseWriter, table string, body map[string]any) {
	records, _ := body["records"].([]any)
	tbl := f.table(table)

	results := make([]map[string]any, 0, len(records))
	for _, raw := range records {
		fields, _ := raw.(map[string]any)
		id, _ := fields["Id"].(float64)
		row, ok := tbl.rows[int(id)]
		if !ok {
			results = append(results, map[string]any{"success": false, "message": fmt.Sprintf("Record %d does not exist", int(id))})
			continue
		}
		for k, v := range fields {
			if k == "Id" {
				continue
			}
			row[k] = v
		}
		row["ModifiedBy"] = f.ActorID
		row["ModifiedOn"] = time.Now().UTC().Format(time.RFC3339)
		results = append(results, map[string]any{"success": true, "data": row})
	}
	writeJSON(w, map[string]any{"success": true, "results": results})
}

func (f *FakeApper) delete(w http.ResponseWriter, table string, body map[string]any) {
	ids, _ := body["RecordIds"].([]any)
	tbl := f.table(table)

	results := make([]map[string]any, 0, len(ids))
	for _, raw := range ids {
		id, _ := raw.(float64)
		if _, ok := tbl.rows[int(id)]; !ok {
			results = append(results, map[string]any{"success": false, "message": fmt.Sprintf("Record %d does not exist", int(id))})
			continue
		}
		delete(tbl.rows, int(id))
		for i, ordered := range tbl.order {
			if ordered == int(id) {
				tbl.order = append(tbl.order[:i], tbl.order[i+1:]...)
				break
			}
		}
		results = append(results, map[string]any{"success": true})
	}
	writeJSON(w, map[string]any{"success": true, "results": results})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
