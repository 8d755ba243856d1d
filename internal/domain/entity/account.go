package entity

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// Account is the aggregate root for the account domain.
// PasswordHash holds a bcrypt hash, never the plain credential.
// Email is the canonical login key; Username is required but not used for login.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string

	PhoneNumber string
	DateOfBirth *time.Time

	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string

	ProfileImageRef string
	IsVerified      bool

	NewsletterSubscription bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount returns an account carrying the default flag values
// (unverified, subscribed to the newsletter).
func NewAccount(username, email string) *Account {
	return &Account{
		Username:               username,
		Email:                  email,
		NewsletterSubscription: true,
	}
}

// FullAddress joins the non-empty address parts with ", " in the fixed order
// line 1, line 2, city, state, postal code, country.
func (a *Account) FullAddress() string {
	return strings.Join(lo.Compact([]string{
		a.AddressLine1,
		a.AddressLine2,
		a.City,
		a.State,
		a.PostalCode,
		a.Country,
	}), ", ")
}

// DisplayName is the human readable identifier of the account: its email.
func (a *Account) DisplayName() string { return a.Email }

func (a *Account) String() string { return a.DisplayName() }

// ComputeFullAddress is the free-function form of FullAddress.
func ComputeFullAddress(a *Account) string {
	if a == nil {
		return ""
	}
	return a.FullAddress()
}

// FormatDisplayName is the free-function form of DisplayName.
func FormatDisplayName(a *Account) string {
	if a == nil {
		return ""
	}
	return a.DisplayName()
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address so
// that uniqueness and login lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
