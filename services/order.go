package services

import (
	"context"
	"fmt"

	"food-delivery/db"
	"food-delivery/models"
)

// RecordOrder inserts a pending order and returns the generated id. The
// caller is responsible for item/price consistency with the catalog.
func RecordOrder(ctx context.Context, userID int64, item string, price int64) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO orders (user_id, item, price, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING order_id`,
		userID, item, price,
	).Scan(&id)
	return id, err
}

// PlaceOrder snapshots the catalog price for the selection and records a
// pending order. A selection outside the catalog fails with ErrUnknownItem
// and writes nothing.
func PlaceOrder(ctx context.Context, catalog *Catalog, userID int64, item string) (*models.Order, error) {
	price, ok := catalog.Price(item)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, item)
	}
	id, err := RecordOrder(ctx, userID, item, price)
	if err != nil {
		return nil, err
	}
	return &models.Order{
		ID:     id,
		UserID: userID,
		Item:   item,
		Price:  price,
		Status: models.OrderStatusPending,
	}, nil
}

// ListOrdersByUser returns all orders of one user.
func ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT order_id, user_id, item, price, status FROM orders
		WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Item, &o.Price, &o.Status); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListAllOrders returns every order in the store.
func ListAllOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT order_id, user_id, item, price, status FROM orders`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Item, &o.Price, &o.Status); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// OrdersForAdmin returns every order for administrative review. Non-admin
// callers get ErrForbidden and no rows.
func OrdersForAdmin(ctx context.Context, requesterID, adminID int64) ([]models.Order, error) {
	if requesterID != adminID {
		return nil, ErrForbidden
	}
	return ListAllOrders(ctx)
}

// AdminOrderLine renders one order for the admin listing.
func AdminOrderLine(o models.Order) string {
	return fmt.Sprintf("Заказ #%d: %s за %d руб. (Статус: %s)", o.ID, o.Item, o.Price, o.Status)
}

// UserOrderLine renders one order for the customer's /orders view.
func UserOrderLine(o models.Order) string {
	return fmt.Sprintf("#%d: %s, %d руб. (%s)", o.ID, o.Item, o.Price, o.Status)
}
