package postgres

import (
	"context"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/repository"
)

type WishlistRepository struct {
	db DB
}

func NewWishlistRepository(db DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Add(ctx context.Context, e *entity.WishlistEntry) error {
	if _, err := uuid.Parse(e.AccountID); err != nil {
		return errs.NewNotFound(errs.EntityAccount, e.AccountID)
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO wishlist_entries (account_id, product_id, created_at)
		VALUES ($1, $2, $3)
	`, e.AccountID, e.ProductID, e.CreatedAt)
	if err != nil {
		if cErr, ok := conflictFrom(err, errs.EntityWishlistEntry); ok {
			return cErr
		}
		if nErr, ok := missingParentFrom(err, e.AccountID, e.ProductID); ok {
			return nErr
		}
		return fmt.Errorf("insert wishlist entry: %w", err)
	}
	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, accountID, productID string) error {
	notFound := errs.NewNotFound(errs.EntityWishlistEntry, accountID+"/"+productID)
	if _, err := uuid.Parse(accountID); err != nil {
		return notFound
	}
	tag, err := r.db.Exec(ctx, `
		DELETE FROM wishlist_entries WHERE account_id = $1 AND product_id = $2
	`, accountID, productID)
	if err != nil {
		return fmt.Errorf("delete wishlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

// List runs the query each time the sequence is ranged over and streams rows
// as they are read. A query or scan failure is yielded once as the error value.
func (r *WishlistRepository) List(ctx context.Context, accountID string) iter.Seq2[*entity.WishlistEntry, error] {
	return func(yield func(*entity.WishlistEntry, error) bool) {
		if _, err := uuid.Parse(accountID); err != nil {
			return
		}
		rows, err := r.db.Query(ctx, `
			SELECT account_id, product_id, created_at
			FROM wishlist_entries
			WHERE account_id = $1
		`, accountID)
		if err != nil {
			yield(nil, fmt.Errorf("query wishlist: %w", err))
			return
		}
		defer rows.Close()
		for rows.Next() {
			e := &entity.WishlistEntry{}
			if err := rows.Scan(&e.AccountID, &e.ProductID, &e.CreatedAt); err != nil {
				yield(nil, fmt.Errorf("scan wishlist entry: %w", err))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate wishlist: %w", err))
		}
	}
}

func (r *WishlistRepository) Count(ctx context.Context, accountID string) (int, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return 0, nil
	}
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM wishlist_entries WHERE account_id = $1`, accountID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count wishlist: %w", err)
	}
	return n, nil
}

func (r *WishlistRepository) RemoveByProduct(ctx context.Context, productID string) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM wishlist_entries WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete wishlist entries for product: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

var _ repository.WishlistRepository = (*WishlistRepository)(nil)
