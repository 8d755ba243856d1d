package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraintFields maps constraint names from db/migrations onto the field
// reported to callers.
var constraintFields = map[string]string{
	"accounts_email_key":                   "email",
	"accounts_username_key":                "username",
	"accounts_pkey":                        "id",
	"wishlist_entries_account_product_key": "product_id",
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// conflictFrom translates a unique violation into a ConflictError for entity.
func conflictFrom(err error, entity string) (error, bool) {
	pgErr, ok := pgError(err)
	if !ok || pgErr.Code != codeUniqueViolation {
		return nil, false
	}
	return errs.NewConflict(entity, constraintFields[pgErr.ConstraintName]), true
}

// missingParentFrom translates a wishlist foreign key violation into a
// NotFoundError for the referenced account or product.
func missingParentFrom(err error, accountID, productID string) (error, bool) {
	pgErr, ok := pgError(err)
	if !ok || pgErr.Code != codeForeignKeyViolation {
		return nil, false
	}
	if pgErr.ConstraintName == "wishlist_entries_product_id_fkey" {
		return errs.NewNotFound(errs.EntityProduct, productID), true
	}
	return errs.NewNotFound(errs.EntityAccount, accountID), true
}
