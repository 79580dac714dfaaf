package sample

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/database/repository"
	"github.com/jask/storefront/internal/domain"
)

var (
	categories = []string{"soft-skill", "hard-skill", "other", "additional", "button"}
	names      = []string{"+1 hour", "Fried tail", "Mamka-timer", "Bark-proof", "Frame", "Hamster", "Mega button", "Portable box"}
	images     = []string{"/5_Dots.svg", "/Shell.svg", "/Asterisk_2.svg", "/Soft_Flower.svg", "/Butterfly.svg", "/Pill.svg"}
)

// Catalog generates n demo products from r. Every eighth product is unpriced.
func Catalog(r *rand.Rand, n int) []domain.Product {
	out := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		name := names[r.Intn(len(names))]
		p := domain.Product{
			ID:          uuid.NewString(),
			Title:       fmt.Sprintf("%s #%d", name, i+1),
			Description: "A sample " + name,
			Image:       images[r.Intn(len(images))],
			Category:    categories[r.Intn(len(categories))],
		}
		if i%8 != 7 {
			p.Price = decimal.NewNullDecimal(decimal.NewFromInt(int64(r.Intn(50)+1) * 50))
		}
		out = append(out, p)
	}
	return out
}

// Seed stores n generated products.
func Seed(ctx context.Context, repo *repository.ProductRepo, r *rand.Rand, n int) error {
	for i, p := range Catalog(r, n) {
		if err := repo.Upsert(ctx, p, i); err != nil {
			return err
		}
	}
	return nil
}
