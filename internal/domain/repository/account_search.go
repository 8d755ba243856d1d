package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
)

// AccountDocument is the searchable projection of an account.
type AccountDocument struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city"`
	Country   string `json:"country"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AccountSearch is a secondary full-text index over accounts.
type AccountSearch interface {
	Index(ctx context.Context, a *entity.Account) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]AccountDocument, error)
}
