package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func anyArgs(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = pgxmock.AnyArg()
	}
	return out
}

func sampleAccount() *entity.Account {
	a := entity.NewAccount("alice", "alice@example.com")
	a.ID = uuid.NewString()
	a.PasswordHash = "hash"
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	return a
}

func TestAccountCreate(t *testing.T) {
	tests := []struct {
		name      string
		execErr   error
		wantField string
		wantIs    error
	}{
		{name: "inserted"},
		{
			name:      "duplicate email",
			execErr:   &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"},
			wantField: "email",
			wantIs:    errs.ErrConflict,
		},
		{
			name:      "duplicate username",
			execErr:   &pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"},
			wantField: "username",
			wantIs:    errs.ErrConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			exp := mock.ExpectExec("INSERT INTO accounts").WithArgs(anyArgs(19)...)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			err := NewAccountRepository(mock).Create(context.Background(), sampleAccount())
			if tt.wantIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantIs)
			var ce *errs.ConflictError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantField, ce.Field)
		})
	}
}

func TestAccountCreateWrapsDriverErrors(t *testing.T) {
	mock := newMock(t)
	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO accounts").WithArgs(anyArgs(19)...).WillReturnError(boom)

	err := NewAccountRepository(mock).Create(context.Background(), sampleAccount())
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, errs.ErrConflict)
}

func TestAccountGetMissing(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM accounts WHERE email").WithArgs("ghost@example.com").WillReturnError(pgx.ErrNoRows)

	repo := NewAccountRepository(mock)
	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// malformed ids never reach the database
	_, err = repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAccountUpdate(t *testing.T) {
	a := sampleAccount()
	readAt := a.UpdatedAt
	a.UpdatedAt = readAt.Add(time.Minute)
	existsRows := func(v bool) *pgxmock.Rows { return pgxmock.NewRows([]string{"exists"}).AddRow(v) }

	t.Run("missing row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE accounts").WithArgs(anyArgs(19)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs(a.ID).WillReturnRows(existsRows(false))
		assert.ErrorIs(t, NewAccountRepository(mock).Update(context.Background(), a, readAt), errs.ErrNotFound)
	})
	t.Run("stale read", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE accounts").WithArgs(anyArgs(19)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs(a.ID).WillReturnRows(existsRows(true))
		err := NewAccountRepository(mock).Update(context.Background(), a, readAt)
		assert.ErrorIs(t, err, errs.ErrStale)
		assert.NotErrorIs(t, err, errs.ErrNotFound)
	})
	t.Run("email taken", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE accounts").WithArgs(anyArgs(19)...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})
		assert.ErrorIs(t, NewAccountRepository(mock).Update(context.Background(), a, readAt), errs.ErrConflict)
	})
	t.Run("updated", func(t *testing.T) {
		mock := newMock(t)
		args := anyArgs(19)
		args[18] = readAt
		mock.ExpectExec(`(?s)UPDATE accounts.*WHERE id = \$1 AND updated_at = \$19`).WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, NewAccountRepository(mock).Update(context.Background(), a, readAt))
	})
}

func TestAccountDelete(t *testing.T) {
	id := uuid.NewString()
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM accounts").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM accounts").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewAccountRepository(mock)
	require.NoError(t, repo.Delete(context.Background(), id))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), errs.ErrNotFound)
}

func TestWishlistAddMapsConstraintErrors(t *testing.T) {
	accountID := uuid.NewString()
	tests := []struct {
		name       string
		execErr    error
		wantIs     error
		wantEntity string
	}{
		{name: "inserted"},
		{
			name:    "duplicate pair",
			execErr: &pgconn.PgError{Code: "23505", ConstraintName: "wishlist_entries_account_product_key"},
			wantIs:  errs.ErrConflict,
		},
		{
			name:       "unknown product",
			execErr:    &pgconn.PgError{Code: "23503", ConstraintName: "wishlist_entries_product_id_fkey"},
			wantIs:     errs.ErrNotFound,
			wantEntity: errs.EntityProduct,
		},
		{
			name:       "unknown account",
			execErr:    &pgconn.PgError{Code: "23503", ConstraintName: "wishlist_entries_account_id_fkey"},
			wantIs:     errs.ErrNotFound,
			wantEntity: errs.EntityAccount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			exp := mock.ExpectExec("INSERT INTO wishlist_entries").WithArgs(accountID, "p1", pgxmock.AnyArg())
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}
			err := NewWishlistRepository(mock).Add(context.Background(), &entity.WishlistEntry{
				AccountID: accountID, ProductID: "p1", CreatedAt: time.Now(),
			})
			if tt.wantIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantIs)
			if tt.wantEntity != "" {
				var nf *errs.NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, tt.wantEntity, nf.Entity)
			}
		})
	}
}

func TestWishlistRemove(t *testing.T) {
	accountID := uuid.NewString()
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM wishlist_entries").WithArgs(accountID, "p1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := NewWishlistRepository(mock).Remove(context.Background(), accountID, "p1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWishlistListQueriesOnEveryRange(t *testing.T) {
	accountID := uuid.NewString()
	now := time.Now().UTC()
	mock := newMock(t)
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("FROM wishlist_entries").WithArgs(accountID).WillReturnRows(
			pgxmock.NewRows([]string{"account_id", "product_id", "created_at"}).
				AddRow(accountID, "p1", now).
				AddRow(accountID, "p2", now),
		)
	}

	seq := NewWishlistRepository(mock).List(context.Background(), accountID)
	for i := 0; i < 2; i++ {
		var got []string
		for e, err := range seq {
			require.NoError(t, err)
			got = append(got, e.ProductID)
		}
		assert.Equal(t, []string{"p1", "p2"}, got)
	}
}

func TestWishlistListYieldsQueryError(t *testing.T) {
	accountID := uuid.NewString()
	boom := errors.New("boom")
	mock := newMock(t)
	mock.ExpectQuery("FROM wishlist_entries").WithArgs(accountID).WillReturnError(boom)

	var gotErr error
	for _, err := range NewWishlistRepository(mock).List(context.Background(), accountID) {
		gotErr = err
	}
	assert.ErrorIs(t, gotErr, boom)
}

func TestWishlistRemoveByProductAndCount(t *testing.T) {
	accountID := uuid.NewString()
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM wishlist_entries WHERE product_id").WithArgs("p1").WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectQuery("SELECT count").WithArgs(accountID).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	repo := NewWishlistRepository(mock)
	n, err := repo.RemoveByProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.Count(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProductCatalogExists(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("p1").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewProductCatalog(mock).Exists(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, ok)
}
