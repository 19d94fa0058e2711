package stubs

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopadmin/internal/models"
	"shopadmin/internal/storage"
)

const lowStockThreshold = 10

// MockStore is an in-memory implementation of the Store interface for
// tests and the credential-free dev runner.
type MockStore struct {
	mu       sync.RWMutex
	expenses map[string]models.Expense
	products map[string]models.Product
	orders   map[string]models.Order
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		expenses: make(map[string]models.Expense),
		products: make(map[string]models.Product),
		orders:   make(map[string]models.Order),
	}
}

// SeedOrder inserts an order directly, for tests.
func (m *MockStore) SeedOrder(order models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt == "" {
		order.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.orders[order.ID] = order
}

// Expense operations

func (m *MockStore) CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expenseDate := in.ExpenseDate
	if expenseDate == "" {
		expenseDate = time.Now().Format("2006-01-02")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	expense := models.Expense{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
		ExpenseDate: expenseDate,
		Category:    in.Category,
		PaidBy:      in.PaidBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.expenses[expense.ID] = expense
	return &expense, nil
}

func (m *MockStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	expense, ok := m.expenses[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &expense, nil
}

func (m *MockStore) ListExpenses(ctx context.Context, limit, offset int) ([]models.Expense, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]models.Expense, 0, len(m.expenses))
	for _, e := range m.expenses {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ExpenseDate > all[j].ExpenseDate
	})

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *MockStore) UpdateExpense(ctx context.Context, id string, upd models.ExpenseUpdate) (*models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expense, ok := m.expenses[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if upd.Title != nil {
		expense.Title = *upd.Title
	}
	if upd.Description != nil {
		expense.Description = *upd.Description
	}
	if upd.Amount != nil {
		expense.Amount = *upd.Amount
	}
	if upd.ExpenseDate != nil {
		expense.ExpenseDate = *upd.ExpenseDate
	}
	if upd.Category != nil {
		expense.Category = *upd.Category
	}
	expense.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	m.expenses[id] = expense
	return &expense, nil
}

func (m *MockStore) DeleteExpense(ctx context.Context, id string) (*models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expense, ok := m.expenses[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	delete(m.expenses, id)
	return &expense, nil
}

func (m *MockStore) ExpenseStats(ctx context.Context) (*models.ExpenseStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &models.ExpenseStats{TotalExpenses: len(m.expenses)}
	for _, e := range m.expenses {
		stats.TotalAmount = stats.TotalAmount.Add(e.Amount)
	}
	if stats.TotalExpenses > 0 {
		stats.AverageExpense = stats.TotalAmount.DivRound(decimal.NewFromInt(int64(stats.TotalExpenses)), 2)
	}
	return stats, nil
}

// Product operations

func (m *MockStore) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// RFC3339Nano keeps newest-first ordering stable for rapid inserts.
	product := models.Product{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Slug:          strings.ReplaceAll(strings.ToLower(in.Name), " ", "-"),
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		IsFeatured:    in.IsFeatured,
		CategoryID:    in.CategoryID,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339Nano),
	}
	m.products[product.ID] = product
	return &product, nil
}

func (m *MockStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	product, ok := m.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &product, nil
}

func (m *MockStore) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt > all[j].CreatedAt
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockStore) SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	var matches []models.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			matches = append(matches, p)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

func (m *MockStore) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}
	if upd.StockQuantity != nil {
		product.StockQuantity = *upd.StockQuantity
	}
	if upd.IsFeatured != nil {
		product.IsFeatured = *upd.IsFeatured
	}
	product.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	m.products[id] = product
	return &product, nil
}

func (m *MockStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MockStore) UpdateProductStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	return m.UpdateProduct(ctx, id, models.ProductUpdate{StockQuantity: &quantity})
}

func (m *MockStore) LowStockProducts(ctx context.Context, threshold int) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var low []models.Product
	for _, p := range m.products {
		if p.StockQuantity <= threshold {
			low = append(low, p)
		}
	}
	sort.Slice(low, func(i, j int) bool {
		return low[i].StockQuantity < low[j].StockQuantity
	})
	return low, nil
}

func (m *MockStore) CountProducts(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.products)), nil
}

func (m *MockStore) ProductStats(ctx context.Context) (*models.ProductStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &models.ProductStats{TotalProducts: len(m.products)}
	for _, p := range m.products {
		stats.TotalStockValue = stats.TotalStockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity))))
		stats.TotalItemsInStock += p.StockQuantity
		if p.StockQuantity == 0 {
			stats.OutOfStockCount++
		}
		if p.StockQuantity <= lowStockThreshold {
			stats.LowStockCount++
		}
	}
	return stats, nil
}

// Order operations

func (m *MockStore) ListOrders(ctx context.Context, limit int, status, customerEmail string) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []models.Order
	for _, o := range m.orders {
		if status != "" && o.Status != status {
			continue
		}
		if customerEmail != "" && o.CustomerEmail != customerEmail {
			continue
		}
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt > all[j].CreatedAt
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &order, nil
}

func (m *MockStore) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	m.orders[id] = order
	return &order, nil
}

func (m *MockStore) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &models.OrderStats{TotalOrders: len(m.orders)}
	for _, o := range m.orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		switch o.Status {
		case "payment_pending":
			stats.PendingOrders++
		case "payment_confirmed":
			stats.ConfirmedOrders++
		case "processing":
			stats.ProcessingOrders++
		case "shipped":
			stats.ShippedOrders++
		case "delivered":
			stats.DeliveredOrders++
		case "cancelled":
			stats.CancelledOrders++
		}
	}
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.DivRound(decimal.NewFromInt(int64(stats.TotalOrders)), 2)
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (m *MockStore) Close() error {
	return nil
}
