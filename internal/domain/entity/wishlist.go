package entity

import "time"

// WishlistEntry records that an account marked a product as desired.
// The product is owned by the external catalogue and referenced by ID only.
type WishlistEntry struct {
	AccountID string
	ProductID string
	CreatedAt time.Time
}

func (w WishlistEntry) String() string {
	return w.AccountID + " - " + w.ProductID
}
