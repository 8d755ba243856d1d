package repository

import "context"

// ProductCatalog is the external owner of product identifiers.
type ProductCatalog interface {
	Exists(ctx context.Context, productID string) (bool, error)
}
