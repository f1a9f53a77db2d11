package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"bosko-storefront/internal/domain"
	"bosko-storefront/internal/identity"
	"bosko-storefront/internal/repository/storage"
)

// TaxRateBasisPoints is the flat sales tax applied to the subtotal (10%).
const TaxRateBasisPoints = 1000

// KV is the slice of device storage the store needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store owns the cart of one device. Every mutation holds the lock for its
// whole duration, including the write-through to storage.
type Store struct {
	mu     sync.Mutex
	kv     KV
	logger *log.Logger
	lines  []domain.CartLine

	// resetPending is set while a reset could not be written to storage.
	// The stored cart then belongs to the previous user and must not be read.
	resetPending bool
}

func New(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{kv: kv, logger: logger}
}

// Hydrate replaces the in-memory lines with the persisted cart. Entries with a
// non-positive quantity or a repeated product id are dropped. When storage
// cannot be read, or still holds a cart an earlier reset failed to remove,
// the in-memory lines are kept.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resetPending {
		s.clearStored(ctx)
		if s.resetPending {
			return
		}
		if len(s.lines) > 0 {
			s.persist(ctx)
		}
		return
	}
	if lines, ok := s.load(ctx); ok {
		s.lines = lines
	}
}

// load reports ok=false only when storage could not be read.
func (s *Store) load(ctx context.Context) ([]domain.CartLine, bool) {
	raw, err := s.kv.Get(ctx, storage.KeyCart)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, true
		}
		s.logger.Printf("cart: read failed: %v", err)
		return nil, false
	}
	var stored []domain.CartLine
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Printf("cart: discarding undecodable cart: %v", err)
		return nil, true
	}
	seen := make(map[int64]struct{}, len(stored))
	lines := make([]domain.CartLine, 0, len(stored))
	for _, l := range stored {
		if l.Quantity <= 0 {
			continue
		}
		if _, dup := seen[l.ProductID]; dup {
			continue
		}
		seen[l.ProductID] = struct{}{}
		lines = append(lines, l)
	}
	return lines, true
}

// Add puts one unit of product in the cart, appending a new line when the
// product is not present yet.
func (s *Store) Add(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(product.ID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  1,
			ImageRef:  product.Image,
		})
	}
	s.persist(ctx)
}

// Remove deletes the line for productID; unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(productID)
	s.persist(ctx)
}

func (s *Store) remove(productID int64) {
	if i := s.indexOf(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// SetQuantity replaces the quantity of a line. n <= 0 removes it. Stock is not checked.
func (s *Store) SetQuantity(ctx context.Context, productID int64, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		s.remove(productID)
	} else if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity = n
	}
	s.persist(ctx)
}

// Clear empties the cart and persists the empty state.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persist(ctx)
}

// Deduct takes the quantities in placed out of the cart, removing lines that
// reach zero. Lines added after placed was read stay.
func (s *Store) Deduct(ctx context.Context, placed []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range placed {
		i := s.indexOf(p.ProductID)
		if i < 0 {
			continue
		}
		if s.lines[i].Quantity <= p.Quantity {
			s.remove(p.ProductID)
		} else {
			s.lines[i].Quantity -= p.Quantity
		}
	}
	s.persist(ctx)
}

// Reset empties the cart and removes the stored key.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(ctx)
}

func (s *Store) reset(ctx context.Context) {
	s.lines = nil
	s.resetPending = true
	s.clearStored(ctx)
}

// clearStored removes the stored cart, overwriting it with an empty list when
// the delete fails. resetPending stays set if neither succeeds.
func (s *Store) clearStored(ctx context.Context) {
	err := s.kv.Delete(ctx, storage.KeyCart)
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		s.resetPending = false
		return
	}
	s.logger.Printf("cart: delete failed: %v", err)
	if err := s.kv.Set(ctx, storage.KeyCart, []byte("[]")); err != nil {
		s.logger.Printf("cart: overwrite after failed delete failed: %v", err)
		return
	}
	s.resetPending = false
}

// OnIdentityChange applies the cart side of an identity transition: leaving a
// user resets the cart, arriving from anonymous reloads the stored one.
func (s *Store) OnIdentityChange(ctx context.Context, change identity.Change) {
	switch change.Kind() {
	case identity.Switched, identity.SignedOut:
		s.Reset(ctx)
	case identity.SignedIn:
		s.Hydrate(ctx)
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) ItemCount() int { return s.Totals().ItemCount }

func (s *Store) Subtotal() domain.Money { return s.Totals().Subtotal }

func (s *Store) Tax() domain.Money { return s.Totals().Tax }

func (s *Store) Total() domain.Money { return s.Totals().Total }

// Totals derives count, subtotal, tax and total from the current lines.
func (s *Store) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.lines)
}

// ComputeTotals derives cart totals; tax is rounded half-even on cents.
func ComputeTotals(lines []domain.CartLine) domain.CartTotals {
	var t domain.CartTotals
	for _, l := range lines {
		t.ItemCount += l.Quantity
		t.Subtotal += l.LineTotal()
	}
	t.Tax = t.Subtotal.Percent(TaxRateBasisPoints)
	t.Total = t.Subtotal + t.Tax
	return t
}

func (s *Store) indexOf(productID int64) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) {
	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		s.logger.Printf("cart: encode failed: %v", err)
		return
	}
	if err := s.kv.Set(ctx, storage.KeyCart, raw); err != nil {
		s.logger.Printf("cart: write failed: %v", err)
		return
	}
	s.resetPending = false
}
