package memory

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/repository"
)

type pairKey struct {
	accountID string
	productID string
}

// Store keeps accounts, products and wishlist entries in process memory.
// A single RWMutex guards all three so that uniqueness checks, inserts and
// cascades are atomic with respect to each other.
type Store struct {
	mu sync.RWMutex

	accounts   map[string]entity.Account
	byEmail    map[string]string
	byUsername map[string]string

	products map[string]entity.Product
	wishlist map[pairKey]entity.WishlistEntry
}

func NewStore() *Store {
	return &Store{
		accounts:   make(map[string]entity.Account),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		products:   make(map[string]entity.Product),
		wishlist:   make(map[pairKey]entity.WishlistEntry),
	}
}

// Accounts returns the account repository view of the store.
func (s *Store) Accounts() *AccountRepository { return &AccountRepository{s: s} }

// Wishlist returns the wishlist repository view of the store.
func (s *Store) Wishlist() *WishlistRepository { return &WishlistRepository{s: s} }

// Catalog returns the product catalogue view of the store.
func (s *Store) Catalog() *ProductCatalog { return &ProductCatalog{s: s} }

// AccountRepository implements repository.AccountRepository on a Store.
type AccountRepository struct{ s *Store }

func (r *AccountRepository) Create(_ context.Context, a *entity.Account) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; ok {
		return errs.NewConflict(errs.EntityAccount, "id")
	}
	if _, ok := s.byEmail[a.Email]; ok {
		return errs.NewConflict(errs.EntityAccount, "email")
	}
	if _, ok := s.byUsername[a.Username]; ok {
		return errs.NewConflict(errs.EntityAccount, "username")
	}
	s.accounts[a.ID] = *a
	s.byEmail[a.Email] = a.ID
	s.byUsername[a.Username] = a.ID
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, errs.NewNotFound(errs.EntityAccount, id)
	}
	return &a, nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, errs.NewNotFound(errs.EntityAccount, email)
	}
	a := r.s.accounts[id]
	return &a, nil
}

func (r *AccountRepository) Update(_ context.Context, a *entity.Account, readAt time.Time) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.accounts[a.ID]
	if !ok {
		return errs.NewNotFound(errs.EntityAccount, a.ID)
	}
	if !cur.UpdatedAt.Equal(readAt) {
		return errs.NewStale(errs.EntityAccount, a.ID)
	}
	if owner, taken := s.byEmail[a.Email]; taken && owner != a.ID {
		return errs.NewConflict(errs.EntityAccount, "email")
	}
	if owner, taken := s.byUsername[a.Username]; taken && owner != a.ID {
		return errs.NewConflict(errs.EntityAccount, "username")
	}
	delete(s.byEmail, cur.Email)
	delete(s.byUsername, cur.Username)
	// created_at is immutable once stored
	a.CreatedAt = cur.CreatedAt
	s.accounts[a.ID] = *a
	s.byEmail[a.Email] = a.ID
	s.byUsername[a.Username] = a.ID
	return nil
}

func (r *AccountRepository) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return errs.NewNotFound(errs.EntityAccount, id)
	}
	delete(s.accounts, id)
	delete(s.byEmail, a.Email)
	delete(s.byUsername, a.Username)
	for k := range s.wishlist {
		if k.accountID == id {
			delete(s.wishlist, k)
		}
	}
	return nil
}

// WishlistRepository implements repository.WishlistRepository on a Store.
type WishlistRepository struct{ s *Store }

func (r *WishlistRepository) Add(_ context.Context, e *entity.WishlistEntry) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[e.AccountID]; !ok {
		return errs.NewNotFound(errs.EntityAccount, e.AccountID)
	}
	if _, ok := s.products[e.ProductID]; !ok {
		return errs.NewNotFound(errs.EntityProduct, e.ProductID)
	}
	k := pairKey{e.AccountID, e.ProductID}
	if _, ok := s.wishlist[k]; ok {
		return errs.NewConflict(errs.EntityWishlistEntry, "product_id")
	}
	s.wishlist[k] = *e
	return nil
}

func (r *WishlistRepository) Remove(_ context.Context, accountID, productID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{accountID, productID}
	if _, ok := s.wishlist[k]; !ok {
		return errs.NewNotFound(errs.EntityWishlistEntry, accountID+"/"+productID)
	}
	delete(s.wishlist, k)
	return nil
}

// List snapshots the account's entries when iteration starts.
func (r *WishlistRepository) List(_ context.Context, accountID string) iter.Seq2[*entity.WishlistEntry, error] {
	return func(yield func(*entity.WishlistEntry, error) bool) {
		r.s.mu.RLock()
		out := make([]entity.WishlistEntry, 0)
		for k, e := range r.s.wishlist {
			if k.accountID == accountID {
				out = append(out, e)
			}
		}
		r.s.mu.RUnlock()
		for i := range out {
			if !yield(&out[i], nil) {
				return
			}
		}
	}
}

func (r *WishlistRepository) Count(_ context.Context, accountID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for k := range r.s.wishlist {
		if k.accountID == accountID {
			n++
		}
	}
	return n, nil
}

func (r *WishlistRepository) RemoveByProduct(_ context.Context, productID string) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropProductEntries(productID), nil
}

// ProductCatalog is an in-memory product catalogue backed by a Store.
type ProductCatalog struct{ s *Store }

func (c *ProductCatalog) Exists(_ context.Context, productID string) (bool, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	_, ok := c.s.products[productID]
	return ok, nil
}

// Put registers or replaces a product.
func (c *ProductCatalog) Put(p entity.Product) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.products[p.ID] = p
}

// Delete removes the product and every wishlist entry referencing it.
func (c *ProductCatalog) Delete(productID string) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	delete(c.s.products, productID)
	c.s.dropProductEntries(productID)
}

// dropProductEntries expects s.mu to be held for writing.
func (s *Store) dropProductEntries(productID string) int {
	n := 0
	for k := range s.wishlist {
		if k.productID == productID {
			delete(s.wishlist, k)
			n++
		}
	}
	return n
}

var (
	_ repository.AccountRepository  = (*AccountRepository)(nil)
	_ repository.WishlistRepository = (*WishlistRepository)(nil)
	_ repository.ProductCatalog     = (*ProductCatalog)(nil)
)
