package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/repository"
)

// ProductCatalog answers existence checks against the products table mirrored
// from the catalogue service.
type ProductCatalog struct {
	db DB
}

func NewProductCatalog(db DB) *ProductCatalog {
	return &ProductCatalog{db: db}
}

func (c *ProductCatalog) Exists(ctx context.Context, productID string) (bool, error) {
	var ok bool
	if err := c.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return ok, nil
}

// Upsert inserts or refreshes a mirrored product. Used by the seeder.
func (c *ProductCatalog) Upsert(ctx context.Context, p entity.Product) error {
	_, err := c.db.Exec(ctx, `
		INSERT INTO products (id, name, category, price, image_url, badge, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, category = EXCLUDED.category, price = EXCLUDED.price,
			image_url = EXCLUDED.image_url, badge = EXCLUDED.badge
	`, p.ID, p.Name, p.Category, p.Price, p.ImageURL, p.Badge, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

var _ repository.ProductCatalog = (*ProductCatalog)(nil)
