package repository

import (
	"context"
	"iter"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
)

// WishlistRepository persists the account/product association.
type WishlistRepository interface {
	// Add inserts the entry; a duplicate (account, product) pair is an *errs.ConflictError.
	Add(ctx context.Context, e *entity.WishlistEntry) error
	// Remove deletes the entry; a missing pair is an *errs.NotFoundError.
	Remove(ctx context.Context, accountID, productID string) error
	// List yields the account's entries. Each range over the sequence queries
	// storage again, so the sequence can be consumed more than once.
	List(ctx context.Context, accountID string) iter.Seq2[*entity.WishlistEntry, error]
	Count(ctx context.Context, accountID string) (int, error)
	// RemoveByProduct drops every entry referencing the product and returns how many were removed.
	RemoveByProduct(ctx context.Context, productID string) (int, error)
}
