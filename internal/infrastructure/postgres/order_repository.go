package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aaryaethnics/storefront-api/internal/domain"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements the OrderRepository port over PostgreSQL. Create
// writes order and items together; run it under the TxRunner.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, number, COALESCE(user_id, ''), status, customer_name, email, phone, address_line1, COALESCE(address_line2, ''), city, state, postal_code, subtotal, shipping_fee, total, currency, created_at, updated_at`

func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, number, user_id, status, customer_name, email, phone, address_line1, address_line2, city, state, postal_code, subtotal, shipping_fee, total, currency, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Number, o.UserID, o.Status, o.CustomerName, o.Email, o.Phone,
		o.AddressLine1, o.AddressLine2, o.City, o.State, o.PostalCode,
		o.Subtotal, o.ShippingFee, o.Total, o.Currency, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range o.Items {
		it := &o.Items[i]
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO order_items (id, order_id, product_id, variant_id, name, options, unit_price, quantity, subtotal)
			 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)`,
			it.ID, it.OrderID, it.ProductID, it.VariantID, it.Name, it.Options, it.UnitPrice, it.Quantity, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *OrderRepo) GetByNumber(number string) (*entity.Order, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM orders WHERE number = $1`, number)
}

func (r *OrderRepo) getOne(query, arg string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.Number, &o.UserID, &o.Status, &o.CustomerName, &o.Email, &o.Phone,
		&o.AddressLine1, &o.AddressLine2, &o.City, &o.State, &o.PostalCode,
		&o.Subtotal, &o.ShippingFee, &o.Total, &o.Currency, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsFor(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) itemsFor(orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, COALESCE(variant_id, ''), name, options, unit_price, quantity, subtotal
		 FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Name, &it.Options, &it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List returns orders newest first; an empty status means all statuses.
// Items are not loaded for the listing view.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.Number, &o.UserID, &o.Status, &o.CustomerName, &o.Email, &o.Phone,
			&o.AddressLine1, &o.AddressLine2, &o.City, &o.State, &o.PostalCode,
			&o.Subtotal, &o.ShippingFee, &o.Total, &o.Currency, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
