package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
)

// AccountRepository defines the persistence operations for accounts.
// Implementations enforce email and username uniqueness atomically and report
// violations as *errs.ConflictError; missing rows are *errs.NotFoundError.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	// Update writes a only if the stored UpdatedAt still equals readAt, the
	// value observed when a was loaded; otherwise it returns *errs.StaleError.
	Update(ctx context.Context, a *entity.Account, readAt time.Time) error
	// Delete hard-deletes the account and cascades to its wishlist entries.
	Delete(ctx context.Context, id string) error
}
