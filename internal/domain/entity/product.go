package entity

import "time"

// Product is the subset of a catalogue product this service persists for
// seeding and existence checks. The catalogue remains the owner.
type Product struct {
	ID        string
	Name      string
	Category  string
	Price     float64
	ImageURL  string
	Badge     string
	CreatedAt time.Time
}
