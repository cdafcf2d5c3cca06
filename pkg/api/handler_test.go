package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pgoetz/csvclean/pkg/normalize"
)

func testRouter() http.Handler {
	return NewRouter(Config{
		DefaultRegion: "DE",
		NumberFormat:  normalize.NumberFormat{DecimalSep: ",", ThousandsSep: "."},
	})
}

func TestHandleNormalize(t *testing.T) {
	tests := []struct {
		kind  string
		value string
		want  string
	}{
		{"date", "25.08.2003", "2003-08-25"},
		{"number", "1,234.56", "1.234,56"},
		{"phone", "0170 1234567", "+491701234567"},
		{"date", "not a date", "not a date"},
		// An explicit empty value is a legal cell state, not a 400.
		{"date", "", ""},
		{"phone", "", ""},
	}
	router := testRouter()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet,
			"/v1/normalize/"+tt.kind+"?value="+url.QueryEscape(tt.value), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s %q: status %d: %s", tt.kind, tt.value, rec.Code, rec.Body)
			continue
		}
		var resp struct {
			Output  string `json:"output"`
			Changed bool   `json:"changed"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Output != tt.want {
			t.Errorf("%s %q: output = %q, want %q", tt.kind, tt.value, resp.Output, tt.want)
		}
		if resp.Changed != (tt.want != tt.value) {
			t.Errorf("%s %q: changed = %v", tt.kind, tt.value, resp.Changed)
		}
	}
}

func TestEndpointFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	router := NewRouter(Config{
		DefaultRegion: "DE",
		NumberFormat:  normalize.DefaultNumberFormat(),
		Logger:        slog.New(slog.NewTextHandler(&buf, nil)),
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/normalize/email?value=x", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "endpoint failed") || !strings.Contains(out, "normalize_value") {
		t.Errorf("failure not logged: %q", out)
	}
}

func TestHandleNormalizeErrors(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/normalize/email?value=x", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown kind: status %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/normalize/date", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing value: status %d, want 400", rec.Code)
	}
}

func TestHandleClean(t *testing.T) {
	body := `{
		"columns": ["joined", "balance"],
		"rows": [["25.08.2003", "1,234.5"], ["bad", "n/a"]],
		"rules": [{"column": "joined", "kind": "date"}, {"column": "balance", "kind": "number"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/clean", strings.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var resp cleanResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Rows[0][0] != "2003-08-25" || resp.Rows[0][1] != "1.234,5" {
		t.Errorf("rows[0] = %v", resp.Rows[0])
	}
	if resp.Rows[1][0] != "bad" || resp.Rows[1][1] != "n/a" {
		t.Errorf("rows[1] = %v, want pass-through", resp.Rows[1])
	}
}

func TestHandleCleanRejects(t *testing.T) {
	router := testRouter()

	// GET on the batch route.
	req := httptest.NewRequest(http.MethodGet, "/v1/clean", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/clean: status %d, want 405", rec.Code)
	}

	// Invalid JSON.
	req = httptest.NewRequest(http.MethodPost, "/v1/clean", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad JSON: status %d, want 400", rec.Code)
	}

	// No columns.
	req = httptest.NewRequest(http.MethodPost, "/v1/clean", strings.NewReader(`{"rows": []}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty columns: status %d, want 400", rec.Code)
	}
}

func TestHandleKindsAndHealth(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/kinds", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("kinds: status %d", rec.Code)
	}
	var kinds kindsResp
	if err := json.Unmarshal(rec.Body.Bytes(), &kinds); err != nil {
		t.Fatal(err)
	}
	if len(kinds.Kinds) != 4 {
		t.Errorf("kinds = %d, want 4", len(kinds.Kinds))
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("health body = %s", rec.Body)
	}
}
