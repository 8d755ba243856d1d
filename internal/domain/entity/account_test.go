package entity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullAddress(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		want    string
	}{
		{
			name:    "no address fields",
			account: Account{},
			want:    "",
		},
		{
			name:    "city and country only",
			account: Account{City: "Jakarta", Country: "Indonesia"},
			want:    "Jakarta, Indonesia",
		},
		{
			name: "all fields in fixed order",
			account: Account{
				AddressLine1: "Jl. Sudirman 1",
				AddressLine2: "Tower B",
				City:         "Jakarta",
				State:        "DKI",
				PostalCode:   "10220",
				Country:      "Indonesia",
			},
			want: "Jl. Sudirman 1, Tower B, Jakarta, DKI, 10220, Indonesia",
		},
		{
			name:    "gaps are skipped without extra separators",
			account: Account{AddressLine2: "Unit 4", PostalCode: "90210"},
			want:    "Unit 4, 90210",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.account
			assert.Equal(t, tt.want, a.FullAddress())
			assert.Equal(t, tt.want, ComputeFullAddress(&a))
		})
	}
}

func TestDisplayNameIsEmail(t *testing.T) {
	a := NewAccount("alice", "alice@example.com")
	assert.Equal(t, "alice@example.com", a.DisplayName())
	assert.Equal(t, "alice@example.com", FormatDisplayName(a))
	assert.Equal(t, "alice@example.com", fmt.Sprint(a))
	assert.Equal(t, "", FormatDisplayName(nil))
	assert.Equal(t, "", ComputeFullAddress(nil))
}

func TestNewAccountDefaults(t *testing.T) {
	a := NewAccount("bob", "bob@example.com")
	assert.False(t, a.IsVerified)
	assert.True(t, a.NewsletterSubscription)
	assert.Nil(t, a.DateOfBirth)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}

func TestWishlistEntryString(t *testing.T) {
	assert.Equal(t, "acc-1 - prod-1", WishlistEntry{AccountID: "acc-1", ProductID: "prod-1"}.String())
}
