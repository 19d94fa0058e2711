package supa

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supabase-community/postgrest-go"
	supabase "github.com/supabase-community/supabase-go"

	"shopadmin/internal/models"
	"shopadmin/internal/storage"
)

const lowStockThreshold = 10

// SupabaseStore talks to the hosted table store over PostgREST.
type SupabaseStore struct {
	client *supabase.Client
}

// New creates a store backed by the hosted Supabase project.
func New(url, serviceRoleKey string) (*SupabaseStore, error) {
	client, err := supabase.NewClient(url, serviceRoleKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

// Expense operations

func (s *SupabaseStore) CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	expenseDate := in.ExpenseDate
	if expenseDate == "" {
		expenseDate = time.Now().Format("2006-01-02")
	}

	payload := map[string]interface{}{
		"title":        in.Title,
		"description":  in.Description,
		"amount":       in.Amount,
		"expense_date": expenseDate,
		"paid_by":      in.PaidBy,
	}
	if in.Category != "" {
		payload["category"] = in.Category
	}

	var rows []models.Expense
	_, err := s.client.From("expenses").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create expense: no data returned")
	}
	return &rows[0], nil
}

func (s *SupabaseStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var rows []models.Expense
	_, err := s.client.From("expenses").
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) ListExpenses(ctx context.Context, limit, offset int) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	total, err := s.client.From("expenses").
		Select("*", "exact", false).
		Order("expense_date", &postgrest.OrderOpts{Ascending: false}).
		Range(offset, offset+limit-1, "").
		ExecuteTo(&expenses)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, total, nil
}

func (s *SupabaseStore) UpdateExpense(ctx context.Context, id string, upd models.ExpenseUpdate) (*models.Expense, error) {
	payload := map[string]interface{}{}
	if upd.Title != nil {
		payload["title"] = *upd.Title
	}
	if upd.Description != nil {
		payload["description"] = *upd.Description
	}
	if upd.Amount != nil {
		payload["amount"] = *upd.Amount
	}
	if upd.ExpenseDate != nil {
		payload["expense_date"] = *upd.ExpenseDate
	}
	if upd.Category != nil {
		payload["category"] = *upd.Category
	}
	if len(payload) == 0 {
		return s.GetExpense(ctx, id)
	}

	var rows []models.Expense
	_, err := s.client.From("expenses").
		Update(payload, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) DeleteExpense(ctx context.Context, id string) (*models.Expense, error) {
	var rows []models.Expense
	_, err := s.client.From("expenses").
		Delete("representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) ExpenseStats(ctx context.Context) (*models.ExpenseStats, error) {
	var expenses []models.Expense
	_, err := s.client.From("expenses").
		Select("amount", "", false).
		ExecuteTo(&expenses)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense stats: %w", err)
	}

	stats := &models.ExpenseStats{TotalExpenses: len(expenses)}
	for _, e := range expenses {
		stats.TotalAmount = stats.TotalAmount.Add(e.Amount)
	}
	if stats.TotalExpenses > 0 {
		stats.AverageExpense = stats.TotalAmount.DivRound(decimalFromInt(stats.TotalExpenses), 2)
	}
	return stats, nil
}

// Product operations

func (s *SupabaseStore) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	payload := map[string]interface{}{
		"name":           in.Name,
		"description":    in.Description,
		"price":          in.Price,
		"slug":           slugify(in.Name),
		"stock_quantity": in.StockQuantity,
		"is_featured":    in.IsFeatured,
		"images":         []string{},
	}
	if in.CategoryID != "" {
		payload["category_id"] = in.CategoryID
	}

	var rows []models.Product
	_, err := s.client.From("products").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create product: no data returned")
	}
	return &rows[0], nil
}

func (s *SupabaseStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var rows []models.Product
	_, err := s.client.From("products").
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	_, err := s.client.From("products").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Range(offset, offset+limit-1, "").
		ExecuteTo(&products)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *SupabaseStore) SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error) {
	var products []models.Product
	filter := fmt.Sprintf("name.ilike.%%%s%%,description.ilike.%%%s%%", query, query)
	_, err := s.client.From("products").
		Select("*", "", false).
		Or(filter, "").
		Limit(limit, "").
		ExecuteTo(&products)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (s *SupabaseStore) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	payload := map[string]interface{}{}
	if upd.Name != nil {
		payload["name"] = *upd.Name
	}
	if upd.Description != nil {
		payload["description"] = *upd.Description
	}
	if upd.Price != nil {
		payload["price"] = *upd.Price
	}
	if upd.StockQuantity != nil {
		payload["stock_quantity"] = *upd.StockQuantity
	}
	if upd.IsFeatured != nil {
		payload["is_featured"] = *upd.IsFeatured
	}
	if len(payload) == 0 {
		return s.GetProduct(ctx, id)
	}

	var rows []models.Product
	_, err := s.client.From("products").
		Update(payload, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) DeleteProduct(ctx context.Context, id string) error {
	var rows []models.Product
	_, err := s.client.From("products").
		Delete("representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if len(rows) == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *SupabaseStore) UpdateProductStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	var rows []models.Product
	_, err := s.client.From("products").
		Update(map[string]interface{}{"stock_quantity": quantity}, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to update product stock: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) LowStockProducts(ctx context.Context, threshold int) ([]models.Product, error) {
	var products []models.Product
	_, err := s.client.From("products").
		Select("*", "", false).
		Lte("stock_quantity", strconv.Itoa(threshold)).
		Order("stock_quantity", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&products)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}
	return products, nil
}

func (s *SupabaseStore) CountProducts(ctx context.Context) (int64, error) {
	_, count, err := s.client.From("products").
		Select("id", "exact", true).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (s *SupabaseStore) ProductStats(ctx context.Context) (*models.ProductStats, error) {
	products, err := s.ListProducts(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}

	stats := &models.ProductStats{TotalProducts: len(products)}
	for _, p := range products {
		stats.TotalStockValue = stats.TotalStockValue.Add(p.Price.Mul(decimalFromInt(p.StockQuantity)))
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

func (s *SupabaseStore) ListOrders(ctx context.Context, limit int, status, customerEmail string) ([]models.Order, error) {
	q := s.client.From("orders").Select("*", "", false)
	if status != "" {
		q = q.Eq("status", status)
	}
	if customerEmail != "" {
		q = q.Eq("customer_email", customerEmail)
	}

	var orders []models.Order
	_, err := q.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		ExecuteTo(&orders)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *SupabaseStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var rows []models.Order
	_, err := s.client.From("orders").
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	payload := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}

	var rows []models.Order
	_, err := s.client.From("orders").
		Update(payload, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30).UTC().Format(time.RFC3339)

	var orders []models.Order
	_, err := s.client.From("orders").
		Select("*", "", false).
		Gte("created_at", thirtyDaysAgo).
		ExecuteTo(&orders)
	if err != nil {
		return nil, fmt.Errorf("failed to get order stats: %w", err)
	}
	return aggregateOrderStats(orders), nil
}

// Close is a no-op; the client is plain HTTP with no pooled resources.
func (s *SupabaseStore) Close() error {
	return nil
}

func aggregateOrderStats(orders []models.Order) *models.OrderStats {
	stats := &models.OrderStats{TotalOrders: len(orders)}
	for _, o := range orders {
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
		stats.AverageOrderValue = stats.TotalRevenue.DivRound(decimalFromInt(stats.TotalOrders), 2)
	}
	return stats
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "/", "-")
	return slug
}
