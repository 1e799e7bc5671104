package memory

import (
	"context"
	"sync"
	"time"

	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
)

type checkoutEntry struct {
	checkout  checkout.Checkout
	expiresAt time.Time
}

// CheckoutStore keeps checkouts in process memory until their TTL lapses.
// Stored values are copies; callers must Save to persist changes.
type CheckoutStore struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]checkoutEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewCheckoutStore builds a store; ttl <= 0 keeps entries forever.
func NewCheckoutStore(ttl time.Duration) *CheckoutStore {
	return &CheckoutStore{
		items: make(map[domainbooking.BookingID]checkoutEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *CheckoutStore) Save(ctx context.Context, c *checkout.Checkout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	entry := checkoutEntry{checkout: snapshot(c)}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.items[c.BookingID] = entry
	return nil
}

func (s *CheckoutStore) Get(ctx context.Context, id domainbooking.BookingID) (*checkout.Checkout, error) {
	s.mu.RLock()
	entry, ok := s.items[id]
	s.mu.RUnlock()
	if !ok || s.expired(entry) {
		return nil, checkout.ErrCheckoutNotFound
	}
	c := snapshot(&entry.checkout)
	return &c, nil
}

func (s *CheckoutStore) expired(e checkoutEntry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

func (s *CheckoutStore) purgeLocked() {
	for id, e := range s.items {
		if s.expired(e) {
			delete(s.items, id)
		}
	}
}

func snapshot(c *checkout.Checkout) checkout.Checkout {
	cp := *c
	cp.ClearEvents()
	if c.Payment != nil {
		ins := *c.Payment
		cp.Payment = &ins
	}
	return cp
}

var _ checkout.Store = (*CheckoutStore)(nil)
