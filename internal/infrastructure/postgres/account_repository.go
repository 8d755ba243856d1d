package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/repository"
)

const accountColumns = `id, username, email, password_hash, first_name, last_name,
		phone_number, date_of_birth,
		address_line_1, address_line_2, city, state, postal_code, country,
		profile_image_ref, is_verified, newsletter_subscription,
		created_at, updated_at`

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, a.ID, a.Username, a.Email, a.PasswordHash, a.FirstName, a.LastName,
		a.PhoneNumber, a.DateOfBirth,
		a.AddressLine1, a.AddressLine2, a.City, a.State, a.PostalCode, a.Country,
		a.ProfileImageRef, a.IsVerified, a.NewsletterSubscription,
		a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if cErr, ok := conflictFrom(err, errs.EntityAccount); ok {
			return cErr
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errs.NewNotFound(errs.EntityAccount, id)
	}
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row, id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row, email)
}

// Update writes every mutable column; created_at is never touched.
func (r *AccountRepository) Update(ctx context.Context, a *entity.Account, readAt time.Time) error {
	if _, err := uuid.Parse(a.ID); err != nil {
		return errs.NewNotFound(errs.EntityAccount, a.ID)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET username = $2, email = $3, password_hash = $4, first_name = $5, last_name = $6,
			phone_number = $7, date_of_birth = $8,
			address_line_1 = $9, address_line_2 = $10, city = $11, state = $12,
			postal_code = $13, country = $14,
			profile_image_ref = $15, is_verified = $16, newsletter_subscription = $17,
			updated_at = $18
		WHERE id = $1 AND updated_at = $19
	`, a.ID, a.Username, a.Email, a.PasswordHash, a.FirstName, a.LastName,
		a.PhoneNumber, a.DateOfBirth,
		a.AddressLine1, a.AddressLine2, a.City, a.State, a.PostalCode, a.Country,
		a.ProfileImageRef, a.IsVerified, a.NewsletterSubscription,
		a.UpdatedAt, readAt)
	if err != nil {
		if cErr, ok := conflictFrom(err, errs.EntityAccount); ok {
			return cErr
		}
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, a.ID).Scan(&exists); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if exists {
		return errs.NewStale(errs.EntityAccount, a.ID)
	}
	return errs.NewNotFound(errs.EntityAccount, a.ID)
}

// Delete removes the account; wishlist_entries rows go with it through ON DELETE CASCADE.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.NewNotFound(errs.EntityAccount, id)
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFound(errs.EntityAccount, id)
	}
	return nil
}

func scanAccount(row pgx.Row, key string) (*entity.Account, error) {
	a := &entity.Account{}
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName,
		&a.PhoneNumber, &a.DateOfBirth,
		&a.AddressLine1, &a.AddressLine2, &a.City, &a.State, &a.PostalCode, &a.Country,
		&a.ProfileImageRef, &a.IsVerified, &a.NewsletterSubscription,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFound(errs.EntityAccount, key)
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
