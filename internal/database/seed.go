package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jask/storefront/internal/database/repository"
	"github.com/jask/storefront/internal/domain"
)

// CatalogFile is the YAML fixture layout read by `storefront seed`.
type CatalogFile struct {
	Products []CatalogEntry `yaml:"products"`
}

// CatalogEntry is one product. A missing price means the product is not for
// sale. A missing id is derived from the title.
type CatalogEntry struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Image       string  `yaml:"image"`
	Category    string  `yaml:"category"`
	Price       *string `yaml:"price"`
}

// LoadCatalogFile parses a fixture file into products.
func LoadCatalogFile(path string) ([]domain.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes fixture YAML.
func ParseCatalog(raw []byte) ([]domain.Product, error) {
	var f CatalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	out := make([]domain.Product, 0, len(f.Products))
	for i, e := range f.Products {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			return nil, fmt.Errorf("product %d: title is required", i+1)
		}
		p := domain.Product{
			ID:          e.ID,
			Title:       title,
			Description: e.Description,
			Image:       e.Image,
			Category:    e.Category,
		}
		if p.ID == "" {
			p.ID = ProductID(title)
		}
		if e.Price != nil {
			d, err := decimal.NewFromString(strings.TrimSpace(*e.Price))
			if err != nil {
				return nil, fmt.Errorf("product %q: price: %w", title, err)
			}
			if d.IsNegative() {
				return nil, fmt.Errorf("product %q: negative price", title)
			}
			p.Price = decimal.NewNullDecimal(d)
		}
		out = append(out, p)
	}
	return out, nil
}

// ProductID derives a stable id from a title so reseeding updates rows in
// place.
func ProductID(title string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("product:"+strings.ToLower(title))).String()
}

// Seed upserts products in file order in one transaction, so a failing entry
// leaves the catalog as it was. It is idempotent.
func Seed(ctx context.Context, db *sql.DB, driver string, products []domain.Product) error {
	return repository.WithTx(ctx, db, func(tx *sql.Tx) error {
		repo := repository.NewProductRepo(tx, driver)
		for i, p := range products {
			if err := repo.Upsert(ctx, p, i); err != nil {
				return fmt.Errorf("seed %q: %w", p.Title, err)
			}
		}
		return nil
	})
}
