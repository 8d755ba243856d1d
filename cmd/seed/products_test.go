package main

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
)

func TestGenerateProducts(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	products := generateProducts(now)
	require.Len(t, products, len(templates)*len(variations))

	ids := lo.Map(products, func(p entity.Product, _ int) string { return p.ID })
	assert.Len(t, lo.Uniq(ids), len(ids))
	assert.Equal(t, "1", products[0].ID)

	for i, p := range products {
		tmpl := templates[i/len(variations)]
		assert.Equal(t, tmpl.category, p.Category)
		assert.Greater(t, p.Price, tmpl.minPrice, p.Name)
		assert.Less(t, p.Price, tmpl.maxPrice, p.Name)
		assert.Contains(t, p.Name, tmpl.name)
		assert.Contains(t, p.ImageURL, tmpl.image)
	}

	assert.Equal(t, products, generateProducts(now))
}
