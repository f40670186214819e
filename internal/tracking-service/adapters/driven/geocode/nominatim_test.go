package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/config"
)

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("format") != "json" || q.Get("lat") == "" || q.Get("lon") == "" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"Plateau, Dakar, Senegal"}`))
	}))
	defer srv.Close()

	g := NewNominatim(&config.Geocoderconfig{BaseURL: srv.URL})

	addr, err := g.Reverse(context.Background(), 14.6928, -17.4467)
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if addr != "Plateau, Dakar, Senegal" {
		t.Errorf("address = %q", addr)
	}
}

func TestReverseErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"empty payload", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}},
		{"garbage payload", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			g := NewNominatim(&config.Geocoderconfig{BaseURL: srv.URL})
			if _, err := g.Reverse(context.Background(), 0, 0); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
