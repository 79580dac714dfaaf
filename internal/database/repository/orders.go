package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/storefront/internal/domain"
)

// OrderRepo handles placed orders.
type OrderRepo struct {
	db     *sql.DB
	driver string
}

func NewOrderRepo(db *sql.DB, driver string) *OrderRepo {
	return &OrderRepo{db: db, driver: driver}
}

// Create stores o and its items in one transaction.
func (r *OrderRepo) Create(ctx context.Context, o Order) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return r.insert(ctx, tx, o)
	})
}

func (r *OrderRepo) insert(ctx context.Context, tx *sql.Tx, o Order) error {
	_, err := tx.ExecContext(ctx, rebind(r.driver, `
	INSERT INTO orders(id, payment, email, phone, address, total)
	VALUES (?, ?, ?, ?, ?, ?)
	`), o.ID, string(o.Customer.Payment), o.Customer.Email, o.Customer.Phone, o.Customer.Address, o.Total)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i, id := range o.Items {
		if _, err := tx.ExecContext(ctx, rebind(r.driver,
			`INSERT INTO order_items(order_id, position, product_id) VALUES (?, ?, ?)`), o.ID, i, id); err != nil {
			return fmt.Errorf("insert order item %s: %w", id, err)
		}
	}
	return nil
}

// Get returns ErrNotFound for an unknown id.
func (r *OrderRepo) Get(ctx context.Context, id string) (Order, error) {
	var (
		o       Order
		payment string
	)
	err := r.db.QueryRowContext(ctx, rebind(r.driver,
		`SELECT id, payment, email, phone, address, total, created_at FROM orders WHERE id = ?`), id).
		Scan(&o.ID, &payment, &o.Customer.Email, &o.Customer.Phone, &o.Customer.Address, &o.Total, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	o.Customer.Payment = domain.Payment(payment)

	rows, err := r.db.QueryContext(ctx, rebind(r.driver,
		`SELECT product_id FROM order_items WHERE order_id = ? ORDER BY position`), id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var pid string
		if err := rows.Scan(&pid); err != nil {
			return Order{}, err
		}
		o.Items = append(o.Items, pid)
	}
	return o, rows.Err()
}

func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}
