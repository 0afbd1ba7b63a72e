package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/nmoreira/storefront-core/internal/catalog"
	"github.com/nmoreira/storefront-core/pkg/logger"
	"github.com/nmoreira/storefront-core/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Store holds the in-memory cart, keyed by product id and iterated in
// insertion order. In-memory state is authoritative: every effective mutation
// fires an asynchronous write-through to Persistence, and a failed write is
// logged and counted but never rolled back. The consistency window is the gap
// between a mutation and its completed write.
type Store struct {
	persistence Persistence
	logg        *logger.Logger
	m           *metrics.StorefrontMetrics

	mu    sync.Mutex
	items []LineItem
	saves sync.WaitGroup
}

// NewStore builds a cart store backed by the provided persistence.
func NewStore(persistence Persistence, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Store, error) {
	if persistence == nil {
		return nil, fmt.Errorf("cart persistence required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Store{
		persistence: persistence,
		logg:        logg,
		m:           m,
	}, nil
}

// Init performs the one-time restore from persistence. Read failures leave
// the cart empty and are logged, never surfaced: the session simply starts
// from scratch.
func (s *Store) Init(ctx context.Context) {
	items, err := s.persistence.Load(ctx)
	if err != nil {
		s.logg.Error(ctx, "cart restore failed, starting empty", err)
		return
	}
	s.ReplaceAll(items)
}

// AddItem merges the product into the cart: an existing line's quantity grows
// by the given amount, a new line is appended at the end. Quantity defaults
// to 1 when not positive.
func (s *Store) AddItem(product catalog.Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			s.scheduleSave()
			return
		}
	}
	s.items = append(s.items, lineItemFromProduct(product, quantity))
	s.scheduleSave()
}

// Increment raises the line's quantity by one. Unknown ids are a no-op.
func (s *Store) Increment(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity++
			s.scheduleSave()
			return
		}
	}
}

// Decrement lowers the line's quantity by one, but never below 1. At quantity
// 1 the call is a no-op: removal is an explicit separate operation.
func (s *Store) Decrement(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			if s.items[i].Quantity > 1 {
				s.items[i].Quantity--
				s.scheduleSave()
			}
			return
		}
	}
}

// Remove deletes the line entirely, regardless of quantity.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.scheduleSave()
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return
	}
	s.items = nil
	s.scheduleSave()
}

// ReplaceAll overwrites the cart contents without merge logic.
func (s *Store) ReplaceAll(items []LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items[:0:0], items...)
	s.scheduleSave()
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalQuantity sums the quantities across all lines.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums price times quantity across all lines.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Checkout is a stub: payment processing is out of scope. It empties the
// in-memory cart and destroys the persisted slot.
func (s *Store) Checkout(ctx context.Context) {
	s.logg.Info(ctx, "checkout requested, clearing cart")

	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if err := s.persistence.Clear(ctx); err != nil {
		s.m.IncPersistFailure()
		s.logg.Error(ctx, "clearing persisted cart failed", err)
	}
}

// Flush waits for all write-throughs issued so far to finish. Call before
// process exit to shrink the consistency window.
func (s *Store) Flush() {
	s.saves.Wait()
}

// scheduleSave snapshots the current list and mirrors it to persistence in
// the background. Caller must hold s.mu. Two racing saves both carry a full
// list, so the slower writer wins without losing in-memory updates.
func (s *Store) scheduleSave() {
	snapshot := make([]LineItem, len(s.items))
	copy(snapshot, s.items)

	s.m.IncPersistWrite()
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		if err := s.persistence.Save(context.Background(), snapshot); err != nil {
			s.m.IncPersistFailure()
			s.logg.Error(context.Background(), "cart write-through failed", err)
		}
	}()
}
