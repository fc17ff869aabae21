package models

// User is a row from the users table. Created on first /start; repeat
// registrations never update it.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// Order is a single menu-item purchase tied to one user.
type Order struct {
	ID     int64
	UserID int64
	Item   string
	Price  int64
	Status string
}

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)
