package region

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/pgoetz/csvclean/pkg/table"
)

func geocodeServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "" {
			t.Error("missing key parameter")
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenCageResolve(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"dedicated subdivision list",
			`{"results":[{"components":{"ISO_3166-2":["US-CA"],"ISO_3166-1_alpha-2":"US","state_code":"XX"}}]}`,
			"US-CA",
		},
		{
			"dedicated subdivision scalar",
			`{"results":[{"components":{"ISO_3166-2":"DE-BY"}}]}`,
			"DE-BY",
		},
		{
			"country plus state_code fallback",
			`{"results":[{"components":{"ISO_3166-1_alpha-2":"DE","state_code":"BY"}}]}`,
			"DE-BY",
		},
		{
			"country without state_code",
			`{"results":[{"components":{"ISO_3166-1_alpha-2":"DE"}}]}`,
			"",
		},
		{
			"no results",
			`{"results":[]}`,
			"",
		},
		{
			"empty subdivision list falls through",
			`{"results":[{"components":{"ISO_3166-2":[],"ISO_3166-1_alpha-2":"US","state_code":"CA"}}]}`,
			"US-CA",
		},
	}
	for _, tt := range tests {
		srv := geocodeServer(t, tt.body, http.StatusOK)
		o := NewOpenCage("test-key", WithBaseURL(srv.URL))
		code, err := o.Resolve(context.Background(), "some address")
		if err != nil {
			t.Errorf("%s: Resolve: %v", tt.name, err)
			continue
		}
		if code != tt.want {
			t.Errorf("%s: code = %q, want %q", tt.name, code, tt.want)
		}
	}
}

func TestOpenCageClientErrorNoRetry(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	o := NewOpenCage("bad-key", WithBaseURL(srv.URL))
	if _, err := o.Resolve(context.Background(), "addr"); err == nil {
		t.Fatal("want error for HTTP 401")
	}
	if requests != 1 {
		t.Errorf("client error retried: %d requests", requests)
	}
}

func TestOpenCageCancelledContext(t *testing.T) {
	srv := geocodeServer(t, `{"results":[]}`, http.StatusOK)
	o := NewOpenCage("key", WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := o.Resolve(ctx, "addr"); err == nil {
		t.Fatal("want error for cancelled context")
	}
}

func TestAnnotate(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"name", "address", "phone"},
		Rows: [][]string{
			{"Alice", "Marienplatz 1, München", "123"},
			{"Bob", "", "456"},
			{"Carol", "nowhere special", "789"},
		},
	}
	r := ResolverFunc(func(_ context.Context, address string) (string, error) {
		switch address {
		case "Marienplatz 1, München":
			return "DE-BY", nil
		case "nowhere special":
			return "", fmt.Errorf("service unavailable")
		}
		t.Errorf("unexpected lookup for %q", address)
		return "", nil
	})

	out := Annotate(context.Background(), tbl, "address", r)

	wantCols := []string{"name", "address", "address_iso_3166_2", "phone"}
	if !reflect.DeepEqual(out.Columns, wantCols) {
		t.Fatalf("Columns = %v, want %v", out.Columns, wantCols)
	}
	codes := out.Column("address_iso_3166_2")
	if !reflect.DeepEqual(codes, []string{"DE-BY", "", ""}) {
		t.Errorf("codes = %v", codes)
	}
	// Source table unchanged.
	if len(tbl.Columns) != 3 {
		t.Error("Annotate modified its input")
	}
}

func TestAnnotateMissingColumn(t *testing.T) {
	tbl := &table.Table{Columns: []string{"a"}, Rows: [][]string{{"1"}}}
	out := Annotate(context.Background(), tbl, "no_such", ResolverFunc(func(context.Context, string) (string, error) {
		t.Error("resolver called for missing column")
		return "", nil
	}))
	if !reflect.DeepEqual(out, tbl) {
		t.Errorf("out = %v, want identical copy", out)
	}
}
