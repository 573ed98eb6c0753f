package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeocodeSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/direct" {
			t.Errorf("expected path /geo/direct, got %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "Paris" {
			t.Errorf("expected q=Paris, got %s", q)
		}
		if limit := r.URL.Query().Get("limit"); limit != "5" {
			t.Errorf("expected default limit 5, got %s", limit)
		}
		w.Write([]byte(`[
			{"name": "Paris", "country": "FR", "lat": 48.85, "lon": 2.35},
			{"name": "Paris", "state": "Texas", "country": "US", "lat": 33.66, "lon": -95.55}
		]`))
	}))
	defer srv.Close()

	client := NewGeocodeClient(srv.Client(), srv.URL)

	locations, err := client.Search(context.Background(), "Paris", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locations))
	}
	if locations[0].Name != "Paris, FR" {
		t.Errorf("expected display name without state, got %q", locations[0].Name)
	}
	if locations[1].Name != "Paris, Texas, US" {
		t.Errorf("expected display name with state, got %q", locations[1].Name)
	}
}

func TestGeocodeSearchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewGeocodeClient(srv.Client(), srv.URL)

	_, err := client.Search(context.Background(), "Nowhereville", 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGeocodeReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/reverse" {
			t.Errorf("expected path /geo/reverse, got %s", r.URL.Path)
		}
		if limit := r.URL.Query().Get("limit"); limit != "1" {
			t.Errorf("expected limit=1, got %s", limit)
		}
		w.Write([]byte(`[{"name": "Lyon", "country": "FR", "lat": 45.76, "lon": 4.83}]`))
	}))
	defer srv.Close()

	client := NewGeocodeClient(srv.Client(), srv.URL)

	loc, err := client.Reverse(context.Background(), 45.76, 4.83)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "Lyon, FR" {
		t.Errorf("expected Lyon, FR, got %q", loc.Name)
	}
}

func TestGeocodeReverseNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewGeocodeClient(srv.Client(), srv.URL)

	_, err := client.Reverse(context.Background(), 0, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGeocodeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewGeocodeClient(srv.Client(), srv.URL)

	_, err := client.Search(context.Background(), "Paris", 5)
	if !IsTransport(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	var te *TransportError
	errors.As(err, &te)
	if te.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500 on error, got %d", te.Status)
	}
}
