package main

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
)

type productTemplate struct {
	name     string
	category string
	minPrice float64
	maxPrice float64
	image    string
}

const unsplash = "https://images.unsplash.com/photo-%s?w=500&h=500&fit=crop"

var templates = []productTemplate{
	{"Wireless Headphones", "Electronics", 50, 300, "1505740420928-5e560c06d30e"},
	{"Smart Watch", "Electronics", 100, 500, "1544117519-31a4b1f4d69e"},
	{"Bluetooth Speaker", "Electronics", 30, 200, "1608043152269-423dbba4e7e1"},
	{"Gaming Mouse", "Gaming", 25, 150, "1527864550417-7fd91fc51a46"},
	{"Mechanical Keyboard", "Gaming", 80, 250, "1541140532154-b024d705b90a"},
	{"Laptop Stand", "Electronics", 20, 100, "1527142879-c2d3ba04349d"},
	{"Designer Backpack", "Fashion", 50, 200, "1553062407-98eeb64c6a62"},
	{"Casual T-Shirt", "Fashion", 15, 50, "1521572163474-6864f9cf17ab"},
	{"Denim Jeans", "Fashion", 40, 120, "1542272604-787c3835535d"},
	{"Sneakers", "Fashion", 60, 300, "1549298916-b41d501d3772"},
	{"Leather Jacket", "Fashion", 100, 400, "1551028719-00167b16eac5"},
	{"Skincare Set", "Beauty", 30, 150, "1556228720-195a672e8a03"},
	{"Makeup Palette", "Beauty", 25, 100, "1512496015851-a90fb38ba796"},
	{"Hair Care Bundle", "Beauty", 35, 120, "1571019613454-1cb2f99b2d8b"},
	{"Perfume", "Beauty", 40, 200, "1541643600914-78b084683601"},
	{"Organic Coffee", "Food & Beverage", 15, 50, "1559056199-641a0ac8b55e"},
	{"Tea Collection", "Food & Beverage", 20, 80, "1556679343-c7306c1976bc"},
	{"Protein Powder", "Food & Beverage", 30, 100, "1593095948071-474c5cc2989d"},
	{"Plant Pot", "Home & Garden", 10, 50, "1485955900006-10f4d324d411"},
	{"Table Lamp", "Home & Garden", 25, 150, "1507003211169-0a1dd7228f2d"},
	{"Throw Pillow", "Home & Garden", 15, 60, "1586023492125-27b2c045efd7"},
	{"Yoga Mat", "Sports", 20, 80, "1544367567-0f2fcb009e0b"},
	{"Dumbbells", "Sports", 30, 200, "1534258936925-c58bed479fcb"},
	{"Running Shoes", "Sports", 50, 250, "1542291026-7eec264c27ff"},
	{"Programming Book", "Books", 20, 80, "1481627834876-b7833e8f5570"},
	{"Novel Collection", "Books", 15, 60, "1544716278-ca5e3f4abd8c"},
	{"Building Blocks", "Toys", 25, 100, "1558060370-d644479cb6f7"},
	{"Action Figure", "Toys", 15, 80, "1551650975-87deedd944c3"},
}

var (
	variations = []string{"Basic", "Premium", "Deluxe", "Pro", "Standard", "Advanced", "Elite", "Ultimate"}
	colors     = []string{"Black", "White", "Blue", "Red", "Green", "Silver", "Gold", "Rose Gold"}
	brands     = []string{"TechPro", "StyleMax", "BeautyLux", "GameForce", "FitLife", "HomeCraft", "SportEdge"}
	badges     = []string{"Best Seller", "New", "Sale", "Popular", "Limited Edition", "Organic", "Pro Choice", "Trending", "Hot Deal", "Exclusive"}
)

// generateProducts expands every template into one product per variation.
// Output is deterministic so reseeding refreshes rather than duplicates rows.
func generateProducts(now time.Time) []entity.Product {
	out := make([]entity.Product, 0, len(templates)*len(variations))
	id := 1
	for ti, t := range templates {
		for vi, v := range variations {
			step := float64(vi+1) / float64(len(variations)+1)
			price := math.Round((t.minPrice+(t.maxPrice-t.minPrice)*step)*100) / 100
			out = append(out, entity.Product{
				ID:        strconv.Itoa(id),
				Name:      fmt.Sprintf("%s %s %s - %s", brands[(ti+vi)%len(brands)], t.name, v, colors[(ti*3+vi)%len(colors)]),
				Category:  t.category,
				Price:     price,
				ImageURL:  fmt.Sprintf(unsplash, t.image),
				Badge:     badges[id%len(badges)],
				CreatedAt: now,
			})
			id++
		}
	}
	return out
}
