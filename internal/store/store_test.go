package store

import (
	"context"
	"testing"
)

func TestMemStoreMissingKeysReadEmpty(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	ids, err := s.LikedIDs(ctx)
	if err != nil {
		t.Fatalf("LikedIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("got %v, want empty", ids)
	}

	items, err := s.CartItems(ctx)
	if err != nil {
		t.Fatalf("CartItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %v, want empty", items)
	}
}

func TestCartRoundTrip(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	want := []CartItem{
		{ProductID: "1", Quantity: 2},
		{ProductID: "7", Quantity: 1},
	}
	if err := s.SetCartItems(ctx, want); err != nil {
		t.Fatalf("SetCartItems: %v", err)
	}

	got, err := s.CartItems(ctx)
	if err != nil {
		t.Fatalf("CartItems: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestLikedRoundTripAndClear(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if err := s.SetLikedIDs(ctx, []string{"3", "5"}); err != nil {
		t.Fatalf("SetLikedIDs: %v", err)
	}
	ids, err := s.LikedIDs(ctx)
	if err != nil {
		t.Fatalf("LikedIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "3" || ids[1] != "5" {
		t.Fatalf("got %v", ids)
	}

	if err := s.SetCartItems(ctx, []CartItem{{ProductID: "3", Quantity: 1}}); err != nil {
		t.Fatalf("SetCartItems: %v", err)
	}
	if err := s.ClearCartItems(ctx); err != nil {
		t.Fatalf("ClearCartItems: %v", err)
	}
	items, err := s.CartItems(ctx)
	if err != nil {
		t.Fatalf("CartItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %v, want empty", items)
	}
}

func TestMalformedRecordsDecodeEmpty(t *testing.T) {
	for _, b := range [][]byte{
		[]byte("not json"),
		[]byte(`{"oops":true}`),
		[]byte(`42`),
	} {
		if got := decodeLikedIDs(b); len(got) != 0 {
			t.Errorf("decodeLikedIDs(%q) = %v, want empty", b, got)
		}
		if got := decodeCartItems(b); len(got) != 0 {
			t.Errorf("decodeCartItems(%q) = %v, want empty", b, got)
		}
	}
}

func TestDecodeSanitizesCartEntries(t *testing.T) {
	b := []byte(`[
		{"productId":"1","quantity":2},
		{"productId":"1","quantity":9},
		{"productId":"","quantity":1},
		{"productId":"2","quantity":0},
		{"productId":"3","quantity":-4},
		{"productId":"4","quantity":1}
	]`)

	got := decodeCartItems(b)
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	if got[0] != (CartItem{ProductID: "1", Quantity: 2}) {
		t.Fatalf("got %v", got[0])
	}
	if got[1] != (CartItem{ProductID: "4", Quantity: 1}) {
		t.Fatalf("got %v", got[1])
	}
}

func TestDecodeDeduplicatesLikedIDs(t *testing.T) {
	got := decodeLikedIDs([]byte(`["1","2","1",""]`))
	if len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Fatalf("got %v", got)
	}
}
