package cart

import (
	"context"
	"log"
	"sync"

	"farmstand-backend/models"
)

// Store is the remote mirror of a user's cart. The manager owns the
// in-session state; the store is a passive backing copy with no authority
// during a session.
type Store interface {
	Load(ctx context.Context, userID string) ([]models.CartItem, error)
	Save(ctx context.Context, userID string, items []models.CartItem) error
}

// Manager keeps one in-memory cart per session, keyed by user id, and
// mirrors every mutation to the store as a detached best-effort write.
// A session with an empty user id is a guest cart: memory only, never
// loaded from or saved to the store, and lost when dropped.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	store    Store
	persists sync.WaitGroup
}

type session struct {
	items []models.CartItem
}

func New(store Store) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		store:    store,
	}
}

// ensure returns the session for userID, loading the stored cart on first
// touch. A failed load is logged and falls open to an empty cart.
// Callers must hold m.mu.
func (m *Manager) ensure(ctx context.Context, userID string) *session {
	if s, ok := m.sessions[userID]; ok {
		return s
	}

	s := &session{}
	if userID != "" {
		items, err := m.store.Load(ctx, userID)
		if err != nil {
			log.Printf("Error loading cart for user %s: %v", userID, err)
		} else {
			s.items = items
		}
	}
	m.sessions[userID] = s
	return s
}

// persist mirrors the given snapshot to the store without blocking the
// caller. Errors are logged and swallowed: the in-memory state already
// reflects the mutation and there is no retry.
func (m *Manager) persist(userID string, items []models.CartItem) {
	if userID == "" {
		return
	}

	m.persists.Add(1)
	go func() {
		defer m.persists.Done()
		if err := m.store.Save(context.Background(), userID, items); err != nil {
			log.Printf("Error saving cart for user %s: %v", userID, err)
		}
	}()
}

func snapshot(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

// AddItem adds one unit of the given product. A line with the same id has
// its quantity incremented; otherwise a new line with quantity 1 is
// appended. The incoming quantity is ignored.
func (m *Manager) AddItem(ctx context.Context, userID string, item models.CartItem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(ctx, userID)
	found := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		s.items = append(s.items, item)
	}

	m.persist(userID, snapshot(s.items))
}

// RemoveItem drops the line with the given product id.
func (m *Manager) RemoveItem(ctx context.Context, userID, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(ctx, userID)
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept

	m.persist(userID, snapshot(s.items))
}

// UpdateQuantity sets the quantity for a line. A quantity below 1 removes
// the line; a stored quantity of zero or less never exists.
func (m *Manager) UpdateQuantity(ctx context.Context, userID, id string, quantity int) {
	if quantity < 1 {
		m.RemoveItem(ctx, userID, id)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(ctx, userID)
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}

	m.persist(userID, snapshot(s.items))
}

// Clear resets the cart to empty and mirrors the empty list.
func (m *Manager) Clear(ctx context.Context, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(ctx, userID)
	s.items = nil

	m.persist(userID, nil)
}

// ClearAndPersist resets the cart and waits for the store write. Used by
// checkout, which must not report success before the order/cart sequence
// has run.
func (m *Manager) ClearAndPersist(ctx context.Context, userID string) error {
	m.mu.Lock()
	s := m.ensure(ctx, userID)
	s.items = nil
	m.mu.Unlock()

	if userID == "" {
		return nil
	}
	return m.store.Save(ctx, userID, nil)
}

// Items returns a copy of the current cart lines.
func (m *Manager) Items(ctx context.Context, userID string) []models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(ctx, userID)
	return snapshot(s.items)
}

// Total recomputes the derived cart total from the current lines.
func (m *Manager) Total(ctx context.Context, userID string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(ctx, userID)
	return models.CartTotal(s.items)
}

// Drop discards the in-memory session without touching the store. Used on
// logout: the remote mirror keeps the last persisted state and is reloaded
// on the next session.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Flush waits for all outstanding background persists. Called during
// shutdown so detached writes are not cut off mid-flight.
func (m *Manager) Flush() {
	m.persists.Wait()
}
