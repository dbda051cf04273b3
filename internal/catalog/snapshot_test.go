package catalog_test

import (
	"testing"

	"CorpMart/internal/catalog"
)

func TestSnapshotLookup(t *testing.T) {
	s := catalog.NewSnapshot([]catalog.Product{
		{ID: "1", Name: "Widget", Category: "a"},
		{ID: "2", Name: "Gadget", Category: "b"},
	})

	p, ok := s.Lookup("2")
	if !ok || p.Name != "Gadget" {
		t.Fatalf("got %v %v", p, ok)
	}

	if _, ok := s.Lookup("missing"); ok {
		t.Fatal("missing id should not resolve")
	}
}

func TestSnapshotCategoriesFirstSeenOrder(t *testing.T) {
	s := catalog.NewSnapshot([]catalog.Product{
		{ID: "1", Category: "b"},
		{ID: "2", Category: "a"},
		{ID: "3", Category: "b"},
		{ID: "4", Category: "c"},
	})

	got := s.Categories()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestEmptySnapshot(t *testing.T) {
	s := catalog.NewSnapshot(nil)
	if s.Len() != 0 {
		t.Fatalf("got %d", s.Len())
	}
	if got := s.Categories(); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}
