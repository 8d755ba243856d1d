package event

import (
	"context"
	"time"
)

// Routing keys for account lifecycle events.
const (
	AccountCreated  = "account.created"
	AccountUpdated  = "account.updated"
	AccountDeleted  = "account.deleted"
	WishlistAdded   = "wishlist.added"
	WishlistRemoved = "wishlist.removed"
)

// Event is published after a successful write so that external collaborators
// (email verification, newsletter, analytics) can react.
type Event struct {
	Type       string    `json:"type"`
	AccountID  string    `json:"account_id"`
	Email      string    `json:"email,omitempty"`
	ProductID  string    `json:"product_id,omitempty"`
	Newsletter *bool     `json:"newsletter_subscription,omitempty"`
	Verified   *bool     `json:"is_verified,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers events to the broker.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
