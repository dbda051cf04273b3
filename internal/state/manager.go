package state

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"CorpMart/internal/store"
)

// Manager is the single writer over the liked and cart records. Every
// mutation reads the current record, rewrites it in full, and only then
// notifies subscribers, so a triggered re-render always observes the
// completed write.
type Manager struct {
	store store.Store
	log   *zap.Logger

	mu        sync.Mutex
	listeners []func()
}

func NewManager(st store.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: st, log: log}
}

// Subscribe registers fn to run synchronously after every successful
// mutation. Listeners run with the manager lock held and must not call back
// into the Manager.
func (m *Manager) Subscribe(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notifyLocked() {
	for _, fn := range m.listeners {
		fn()
	}
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *Manager) LikedIDs(ctx context.Context) ([]string, error) {
	return m.store.LikedIDs(ctx)
}

// LikedSet returns liked membership as a set for render-time lookups.
func (m *Manager) LikedSet(ctx context.Context) (map[string]struct{}, error) {
	ids, err := m.store.LikedIDs(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (m *Manager) CartItems(ctx context.Context) ([]store.CartItem, error) {
	return m.store.CartItems(ctx)
}

// ToggleLike flips membership of id in the liked set and reports the new
// state.
func (m *Manager) ToggleLike(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, err := m.store.LikedIDs(ctx)
	if err != nil {
		return false, err
	}

	liked := true
	next := make([]string, 0, len(ids)+1)
	for _, existing := range ids {
		if existing == id {
			liked = false
			continue
		}
		next = append(next, existing)
	}
	if liked {
		next = append(next, id)
	}

	if err := m.store.SetLikedIDs(ctx, next); err != nil {
		return false, err
	}

	m.log.Debug("like toggled", zap.String("product_id", id), zap.Bool("liked", liked))
	m.notifyLocked()
	return liked, nil
}

// AddToCart increments the quantity of an existing line or appends a new
// one. The id does not have to resolve against any catalog snapshot.
func (m *Manager) AddToCart(ctx context.Context, id string) (store.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.store.CartItems(ctx)
	if err != nil {
		return store.CartItem{}, err
	}

	var line store.CartItem
	found := false
	for i := range items {
		if items[i].ProductID == id {
			items[i].Quantity++
			line = items[i]
			found = true
			break
		}
	}
	if !found {
		line = store.CartItem{ProductID: id, Quantity: 1}
		items = append(items, line)
	}

	if err := m.store.SetCartItems(ctx, items); err != nil {
		return store.CartItem{}, err
	}

	m.log.Debug("cart add", zap.String("product_id", id), zap.Int("quantity", line.Quantity))
	m.notifyLocked()
	return line, nil
}

// RemoveFromCart deletes the line entirely regardless of its quantity.
func (m *Manager) RemoveFromCart(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.store.CartItems(ctx)
	if err != nil {
		return err
	}

	next := items[:0]
	for _, it := range items {
		if it.ProductID != id {
			next = append(next, it)
		}
	}

	if err := m.store.SetCartItems(ctx, next); err != nil {
		return err
	}

	m.log.Debug("cart remove", zap.String("product_id", id))
	m.notifyLocked()
	return nil
}

// DecrementCartItem lowers the line's quantity by one; a line reaching zero
// is removed rather than persisted at zero.
func (m *Manager) DecrementCartItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.store.CartItems(ctx)
	if err != nil {
		return err
	}

	next := make([]store.CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID == id {
			it.Quantity--
			if it.Quantity < 1 {
				continue
			}
		}
		next = append(next, it)
	}

	if err := m.store.SetCartItems(ctx, next); err != nil {
		return err
	}

	m.log.Debug("cart decrement", zap.String("product_id", id))
	m.notifyLocked()
	return nil
}

func (m *Manager) ClearCart(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.ClearCartItems(ctx); err != nil {
		return err
	}

	m.log.Info("cart cleared")
	m.notifyLocked()
	return nil
}

// Logout wipes both records unconditionally. Both clears are attempted even
// if the first fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := errors.Join(
		m.store.SetLikedIDs(ctx, nil),
		m.store.ClearCartItems(ctx),
	)
	if err != nil {
		return err
	}

	m.log.Info("logout, client state cleared")
	m.notifyLocked()
	return nil
}
