package services

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/db"
	"food-delivery/models"
)

// newMockPool swaps db.Pool for a pgxmock pool for the duration of the test.
func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	prev := db.Pool
	db.Pool = mock
	t.Cleanup(func() {
		db.Pool = prev
		mock.Close()
	})
	return mock
}

func TestRegisterUserIdempotent(t *testing.T) {
	mock := newMockPool(t)
	ctx := context.Background()
	u := models.User{ID: 1, Username: "alice", FirstName: "Alice", LastName: "A"}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Username, u.FirstName, u.LastName).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, RegisterUser(ctx, u))

	// Second registration hits ON CONFLICT DO NOTHING: zero rows, no error,
	// even with changed names.
	changed := models.User{ID: 1, Username: "alice2", FirstName: "Alicia", LastName: "B"}
	mock.ExpectExec("INSERT INTO users").
		WithArgs(changed.ID, changed.Username, changed.FirstName, changed.LastName).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	require.NoError(t, RegisterUser(ctx, changed))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderSnapshotsCatalogPrice(t *testing.T) {
	mock := newMockPool(t)
	catalog := DefaultCatalog()

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), "Пицца", int64(500)).
		WillReturnRows(pgxmock.NewRows([]string{"order_id"}).AddRow(int64(7)))

	order, err := PlaceOrder(context.Background(), catalog, 1, "Пицца")
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, int64(1), order.UserID)
	assert.Equal(t, "Пицца", order.Item)
	assert.Equal(t, int64(500), order.Price)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderUnknownItem(t *testing.T) {
	mock := newMockPool(t)

	order, err := PlaceOrder(context.Background(), DefaultCatalog(), 1, "NotOnMenu")
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.Nil(t, order)

	// No SQL may be issued for an invalid selection.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersByUser(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery("SELECT order_id, user_id, item, price, status FROM orders").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"order_id", "user_id", "item", "price", "status"}).
			AddRow(int64(1), int64(1), "Пицца", int64(500), "pending"))

	orders, err := ListOrdersByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.Order{ID: 1, UserID: 1, Item: "Пицца", Price: 500, Status: "pending"}, orders[0])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersForAdmin(t *testing.T) {
	mock := newMockPool(t)
	const adminID int64 = 99

	mock.ExpectQuery("SELECT order_id, user_id, item, price, status FROM orders").
		WillReturnRows(pgxmock.NewRows([]string{"order_id", "user_id", "item", "price", "status"}).
			AddRow(int64(1), int64(10), "Пицца", int64(500), "pending").
			AddRow(int64(2), int64(11), "Суши", int64(700), "pending"))

	orders, err := OrdersForAdmin(context.Background(), adminID, adminID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersForAdminForbidden(t *testing.T) {
	mock := newMockPool(t)

	orders, err := OrdersForAdmin(context.Background(), 5, 99)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, orders)

	// Non-admin callers must not reach the store at all.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartThenOrderScenario(t *testing.T) {
	mock := newMockPool(t)
	ctx := context.Background()
	catalog := DefaultCatalog()
	u := models.User{ID: 1, Username: "u", FirstName: "U"}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Username, u.FirstName, u.LastName).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), "Пицца", int64(500)).
		WillReturnRows(pgxmock.NewRows([]string{"order_id"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT order_id, user_id, item, price, status FROM orders").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"order_id", "user_id", "item", "price", "status"}).
			AddRow(int64(1), int64(1), "Пицца", int64(500), "pending"))

	require.NoError(t, RegisterUser(ctx, u))
	order, err := PlaceOrder(ctx, catalog, u.ID, "Пицца")
	require.NoError(t, err)

	orders, err := ListOrdersByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, *order, orders[0])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordOrderStorageError(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), "Пицца", int64(500)).
		WillReturnError(errors.New("connection refused"))

	_, err := RecordOrder(context.Background(), 1, "Пицца", 500)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
