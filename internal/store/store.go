package store

import (
	"context"
	"encoding/json"
)

// CartItem is one cart line. Quantity is always >= 1 in persisted state;
// an item decremented to zero is removed, never written back.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// The two logical records, persisted as whole-value JSON documents:
// liked ids as an array of strings, cart as an array of CartItem.
const (
	likedKey = "corpmart:liked"
	cartKey  = "corpmart:cart"
)

// Store persists the client-state records. Reads of a missing or malformed
// record return the empty collection, never an error; errors are reserved
// for backend I/O failures. Writes overwrite the whole record.
type Store interface {
	LikedIDs(ctx context.Context) ([]string, error)
	SetLikedIDs(ctx context.Context, ids []string) error
	CartItems(ctx context.Context) ([]CartItem, error)
	SetCartItems(ctx context.Context, items []CartItem) error
	ClearCartItems(ctx context.Context) error
	Ping(ctx context.Context) error
}

func decodeLikedIDs(b []byte) []string {
	if len(b) == 0 {
		return []string{}
	}

	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func decodeCartItems(b []byte) []CartItem {
	if len(b) == 0 {
		return []CartItem{}
	}

	var raw []CartItem
	if err := json.Unmarshal(b, &raw); err != nil {
		return []CartItem{}
	}

	out := make([]CartItem, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, it := range raw {
		if it.ProductID == "" || it.Quantity < 1 {
			continue
		}
		if _, dup := seen[it.ProductID]; dup {
			continue
		}
		seen[it.ProductID] = struct{}{}
		out = append(out, it)
	}
	return out
}

func encodeLikedIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

func encodeCartItems(items []CartItem) ([]byte, error) {
	if items == nil {
		items = []CartItem{}
	}
	return json.Marshal(items)
}
