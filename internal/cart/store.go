// Package cart caches the last server-reported cart snapshot and exposes
// mutate-then-refresh operations over it. The server owns the cart; every
// mutation replaces the snapshot wholesale with the server's response, and
// derived values (item count, subtotal) are computed from that snapshot only.
package cart

import (
	"context"
	"sync"

	"github.com/storelab/shopfront/internal/domain"
)

// API is the slice of the storefront client the cart store depends on.
type API interface {
	GetCart(ctx context.Context) (domain.Cart, error)
	UpsertCartItem(ctx context.Context, req domain.UpsertItemRequest) (domain.Cart, error)
	RemoveCartItem(ctx context.Context, cartItemID int64) (domain.Cart, error)
	ClearCart(ctx context.Context) (domain.Cart, error)
}

// Sessions reports whether the current user is authenticated.
type Sessions interface {
	Authenticated() bool
}

// Store holds the last-fetched cart snapshot. It is safe for concurrent use,
// but operations are not serialized against each other: when two mutations
// overlap, the later server response wins. Callers that need ordering must
// serialize their own calls.
type Store struct {
	api      API
	sessions Sessions

	mu       sync.RWMutex
	snapshot *domain.Cart
	loading  bool
}

// NewStore creates a cart store.
func NewStore(api API, sessions Sessions) *Store {
	return &Store{api: api, sessions: sessions}
}

// Snapshot returns the last-known cart, or nil when none has been fetched or
// the user is unauthenticated.
func (s *Store) Snapshot() *domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Loading reports whether a Refresh is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ItemsCount is the sum of quantities over the snapshot's items; 0 when there
// is no snapshot.
func (s *Store) ItemsCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return 0
	}
	count := 0
	for _, item := range s.snapshot.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the server-provided subtotal string, "0.00" when absent.
func (s *Store) Subtotal() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil || s.snapshot.Subtotal == "" {
		return "0.00"
	}
	return s.snapshot.Subtotal
}

func (s *Store) replace(next domain.Cart) {
	s.mu.Lock()
	s.snapshot = &next
	s.mu.Unlock()
}

// Refresh fetches the cart and replaces the snapshot. When the session is
// unauthenticated the snapshot is reset to nil without a network call, so an
// anonymous context never issues authenticated requests. The loading flag is
// cleared on success and failure alike.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.sessions.Authenticated() {
		s.mu.Lock()
		s.snapshot = nil
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	next, err := s.api.GetCart(ctx)
	if err != nil {
		return err
	}
	s.replace(next)
	return nil
}

// AddOrUpdateItem upserts a product line. Quantity must already be a positive
// integer; the store does not re-validate it. Failures propagate untouched
// and leave the snapshot as it was.
func (s *Store) AddOrUpdateItem(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	next, err := s.api.UpsertCartItem(ctx, domain.UpsertItemRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return nil, err
	}
	s.replace(next)
	return s.Snapshot(), nil
}

// RemoveItem deletes one cart line.
func (s *Store) RemoveItem(ctx context.Context, cartItemID int64) (*domain.Cart, error) {
	next, err := s.api.RemoveCartItem(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	s.replace(next)
	return s.Snapshot(), nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) (*domain.Cart, error) {
	next, err := s.api.ClearCart(ctx)
	if err != nil {
		return nil, err
	}
	s.replace(next)
	return s.Snapshot(), nil
}
