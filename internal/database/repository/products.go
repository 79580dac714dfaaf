package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jask/storefront/internal/domain"
)

// ProductRepo handles the catalog.
type ProductRepo struct {
	db     DBTX
	driver string
}

// NewProductRepo works on a *sql.DB or inside a *sql.Tx.
func NewProductRepo(db DBTX, driver string) *ProductRepo {
	return &ProductRepo{db: db, driver: driver}
}

// Upsert inserts or replaces a product. sortOrder fixes its catalog position.
func (r *ProductRepo) Upsert(ctx context.Context, p domain.Product, sortOrder int) error {
	_, err := r.db.ExecContext(ctx, rebind(r.driver, `
	INSERT INTO products(id, title, description, image, category, price, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 description=excluded.description,
	 image=excluded.image,
	 category=excluded.category,
	 price=excluded.price,
	 sort_order=excluded.sort_order;
	`), p.ID, p.Title, p.Description, p.Image, p.Category, p.Price, sortOrder)
	return err
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description, image, category, price FROM products ORDER BY sort_order, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns ErrNotFound for an unknown id.
func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, rebind(r.driver, `SELECT id, title, description, image, category, price FROM products WHERE id = ?`), id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

// GetMany returns the products found among ids, keyed by id.
func (r *ProductRepo) GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, rebind(r.driver,
		`SELECT id, title, description, image, category, price FROM products WHERE id IN (`+placeholders(len(ids))+`)`), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var p domain.Product
	err := s.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.Category, &p.Price)
	return p, err
}
