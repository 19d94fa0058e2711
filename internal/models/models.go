package models

import "github.com/shopspring/decimal"

// Order statuses accepted by the store. Must stay in sync with the
// admin dashboard enum.
var ValidOrderStatuses = []string{
	"payment_pending",
	"payment_confirmed",
	"processing",
	"shipped",
	"delivered",
	"cancelled",
	"refunded",
}

// IsValidOrderStatus reports whether status is one of the known order statuses.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ShippingAddress is the address block embedded in an order.
type ShippingAddress struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	Phone        string `json:"phone,omitempty"`
}

// OrderItem is a single line item in an order.
type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// Order mirrors the orders table. Timestamps stay as the ISO strings the
// store returns; formatting happens at the presentation layer.
type Order struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"order_number"`
	Status         string          `json:"status"`
	UserID         string          `json:"user_id"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerPhone  string          `json:"customer_phone,omitempty"`
	ShippingAddr   ShippingAddress `json:"shipping_address"`
	Items          []OrderItem     `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Currency       string          `json:"currency"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

// Product mirrors the products table.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug,omitempty"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsFeatured    bool            `json:"is_featured"`
	CategoryID    string          `json:"category_id,omitempty"`
	Images        []string        `json:"images,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at,omitempty"`
}

// ProductInput carries the fields for creating a product.
type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	IsFeatured    bool
	CategoryID    string
}

// ProductUpdate carries optional fields for a partial product update.
// Nil fields are left untouched.
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
	IsFeatured    *bool
}

// Expense mirrors the expenses table.
type Expense struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
	Category    string          `json:"category,omitempty"`
	PaidBy      string          `json:"paid_by,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

// ExpenseInput carries the fields for creating an expense.
type ExpenseInput struct {
	Title       string
	Description string
	Amount      decimal.Decimal
	ExpenseDate string // YYYY-MM-DD; empty means today
	Category    string
	PaidBy      string
}

// ExpenseUpdate carries optional fields for a partial expense update.
type ExpenseUpdate struct {
	Title       *string
	Description *string
	Amount      *decimal.Decimal
	ExpenseDate *string
	Category    *string
}

// OrderStats aggregates orders from the last 30 days.
type OrderStats struct {
	TotalOrders       int
	PendingOrders     int
	ConfirmedOrders   int
	ProcessingOrders  int
	ShippedOrders     int
	DeliveredOrders   int
	CancelledOrders   int
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
}

// ExpenseStats aggregates all recorded expenses.
type ExpenseStats struct {
	TotalExpenses  int
	TotalAmount    decimal.Decimal
	AverageExpense decimal.Decimal
}

// ProductStats aggregates the product catalog.
type ProductStats struct {
	TotalProducts     int
	TotalStockValue   decimal.Decimal
	TotalItemsInStock int
	LowStockCount     int
	OutOfStockCount   int
}
