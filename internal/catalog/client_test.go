package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"CorpMart/internal/catalog"
)

const upstreamBody = `[
	{"id":1,"title":"Widget","category":"tools","price":10.5,
	 "rating":{"rate":4.5,"count":120},"image":"http://img/1.png",
	 "description":"A fine widget"},
	{"id":2,"title":"Gadget","category":"electronics","price":20,
	 "rating":{"rate":3.0,"count":9},"image":"http://img/2.png",
	 "description":""}
]`

func newUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(handler)
}

func TestFetchNormalizesRecords(t *testing.T) {
	var gotQuery string
	ts := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstreamBody))
	})
	defer ts.Close()

	c := catalog.NewClient(ts.URL)
	products, err := c.Fetch(context.Background(), 30)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotQuery != "limit=30" {
		t.Fatalf("got query %q, want limit=30", gotQuery)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products", len(products))
	}

	p := products[0]
	if p.ID != "1" {
		t.Errorf("numeric id not coerced to string: %q", p.ID)
	}
	if p.Name != "Widget" {
		t.Errorf("title not mapped to name: %q", p.Name)
	}
	if p.Rating.StringFixed(1) != "4.5" {
		t.Errorf("nested rating not extracted: %s", p.Rating)
	}
	if p.Price.StringFixed(2) != "10.50" {
		t.Errorf("price: %s", p.Price)
	}
	if p.Description != "A fine widget" {
		t.Errorf("description: %q", p.Description)
	}
}

func TestFetchWithoutLimitOmitsQuery(t *testing.T) {
	var gotQuery string
	ts := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})
	defer ts.Close()

	c := catalog.NewClient(ts.URL)
	if _, err := c.Fetch(context.Background(), 0); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("got query %q, want none", gotQuery)
	}
}

func TestFetchToleratesMissingOptionalFields(t *testing.T) {
	ts := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"x1","title":"Bare","category":"misc","price":5}]`))
	})
	defer ts.Close()

	c := catalog.NewClient(ts.URL)
	products, err := c.Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products", len(products))
	}
	if products[0].Description != "" {
		t.Errorf("description: %q", products[0].Description)
	}
	if !products[0].Rating.IsZero() {
		t.Errorf("rating: %s", products[0].Rating)
	}
}

func TestFetchFailsOnNon2xx(t *testing.T) {
	ts := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer ts.Close()

	c := catalog.NewClient(ts.URL)
	_, err := c.Fetch(context.Background(), 0)
	if !errors.Is(err, catalog.ErrFetchFailed) {
		t.Fatalf("got %v, want ErrFetchFailed", err)
	}
}

func TestFetchFailsOnMissingID(t *testing.T) {
	ts := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"title":"NoID","category":"misc","price":5}]`))
	})
	defer ts.Close()

	c := catalog.NewClient(ts.URL)
	_, err := c.Fetch(context.Background(), 0)
	if !errors.Is(err, catalog.ErrFetchFailed) {
		t.Fatalf("got %v, want ErrFetchFailed", err)
	}
}

func TestFetchFailsOnUnreachableUpstream(t *testing.T) {
	c := catalog.NewClient("http://127.0.0.1:1")
	_, err := c.Fetch(context.Background(), 0)
	if !errors.Is(err, catalog.ErrFetchFailed) {
		t.Fatalf("got %v, want ErrFetchFailed", err)
	}
}
