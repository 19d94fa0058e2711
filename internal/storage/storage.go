package storage

import (
	"context"
	"errors"

	"shopadmin/internal/models"
)

// ErrNotFound is returned when a record does not exist in the store.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for the remote table store.
// All persistence and consistency guarantees are delegated to it.
type Store interface {
	// Expense operations
	CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error)
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpenses returns one page of expenses ordered by expense_date
	// descending, together with the exact total count.
	ListExpenses(ctx context.Context, limit, offset int) ([]models.Expense, int64, error)
	UpdateExpense(ctx context.Context, id string, upd models.ExpenseUpdate) (*models.Expense, error)

	// DeleteExpense removes an expense and returns the deleted record.
	DeleteExpense(ctx context.Context, id string) (*models.Expense, error)
	ExpenseStats(ctx context.Context) (*models.ExpenseStats, error)

	// Product operations
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UpdateProductStock(ctx context.Context, id string, quantity int) (*models.Product, error)

	// LowStockProducts returns products at or below the threshold,
	// emptiest first.
	LowStockProducts(ctx context.Context, threshold int) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	ProductStats(ctx context.Context) (*models.ProductStats, error)

	// Order operations
	ListOrders(ctx context.Context, limit int, status, customerEmail string) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error)

	// OrderStats aggregates orders created in the last 30 days.
	OrderStats(ctx context.Context) (*models.OrderStats, error)

	// Lifecycle
	Close() error
}
