package supa

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/models"
	"shopadmin/internal/storage"
)

// recordedRequest captures what the store put on the wire.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// newPostgRESTDouble serves canned PostgREST responses and records the
// last request. count is reported through the Content-Range header.
func newPostgRESTDouble(t *testing.T, status int, body string, count string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	last := &recordedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		last.Method = r.Method
		last.Path = r.URL.Path
		last.Query = r.URL.RawQuery
		last.Body = string(raw)

		if count != "" {
			w.Header().Set("Content-Range", count)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, last
}

func newTestStore(t *testing.T, server *httptest.Server) *SupabaseStore {
	t.Helper()
	store, err := New(server.URL, "service-role-key")
	require.NoError(t, err)
	return store
}

func TestSupabaseStore_ListExpenses(t *testing.T) {
	body := `[{"id":"a3bb189e-8bf9-3888-9912-ace4e6543002","title":"Packaging","amount":"300.00","expense_date":"2026-08-15"}]`
	server, last := newPostgRESTDouble(t, http.StatusOK, body, "0-0/7")
	store := newTestStore(t, server)

	expenses, total, err := store.ListExpenses(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.EqualValues(t, 7, total, "total should come from Content-Range")
	require.Len(t, expenses, 1)
	assert.Equal(t, "Packaging", expenses[0].Title)
	assert.True(t, expenses[0].Amount.Equal(decimal.NewFromInt(300)))

	assert.Equal(t, http.MethodGet, last.Method)
	assert.True(t, strings.HasSuffix(last.Path, "/expenses"), "unexpected path %s", last.Path)
	assert.Contains(t, last.Query, "order=expense_date.desc")
}

func TestSupabaseStore_GetExpenseNotFound(t *testing.T) {
	server, last := newPostgRESTDouble(t, http.StatusOK, `[]`, "")
	store := newTestStore(t, server)

	_, err := store.GetExpense(context.Background(), "a3bb189e-8bf9-3888-9912-ace4e6543002")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Contains(t, last.Query, "id=eq.a3bb189e-8bf9-3888-9912-ace4e6543002")
}

func TestSupabaseStore_CreateExpense(t *testing.T) {
	body := `[{"id":"a3bb189e-8bf9-3888-9912-ace4e6543002","title":"Courier","amount":"250.00","expense_date":"2026-08-29"}]`
	server, last := newPostgRESTDouble(t, http.StatusCreated, body, "")
	store := newTestStore(t, server)

	expense, err := store.CreateExpense(context.Background(), models.ExpenseInput{
		Title:  "Courier",
		Amount: decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	assert.Equal(t, "Courier", expense.Title)

	assert.Equal(t, http.MethodPost, last.Method)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(last.Body), &payload))
	assert.Equal(t, "Courier", payload["title"])
	assert.NotEmpty(t, payload["expense_date"], "empty input date should be resolved before insert")
}

func TestSupabaseStore_UpdateOrderStatus(t *testing.T) {
	body := `[{"id":"a3bb189e-8bf9-3888-9912-ace4e6543002","order_number":"CB-1001","status":"shipped","total_amount":"999.00","currency":"INR"}]`
	server, last := newPostgRESTDouble(t, http.StatusOK, body, "")
	store := newTestStore(t, server)

	order, err := store.UpdateOrderStatus(context.Background(), "a3bb189e-8bf9-3888-9912-ace4e6543002", "shipped")
	require.NoError(t, err)
	assert.Equal(t, "shipped", order.Status)
	assert.Equal(t, "CB-1001", order.OrderNumber)

	assert.Equal(t, http.MethodPatch, last.Method)
	assert.True(t, strings.HasSuffix(last.Path, "/orders"), "unexpected path %s", last.Path)
	assert.Contains(t, last.Body, `"status":"shipped"`)
}

func TestSupabaseStore_UpdateOrderStatusNotFound(t *testing.T) {
	server, _ := newPostgRESTDouble(t, http.StatusOK, `[]`, "")
	store := newTestStore(t, server)

	_, err := store.UpdateOrderStatus(context.Background(), "a3bb189e-8bf9-3888-9912-ace4e6543002", "shipped")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSupabaseStore_SearchProducts(t *testing.T) {
	body := `[{"id":"a3bb189e-8bf9-3888-9912-ace4e6543002","name":"Berry Mug","price":"350.00","stock_quantity":5}]`
	server, last := newPostgRESTDouble(t, http.StatusOK, body, "")
	store := newTestStore(t, server)

	products, err := store.SearchProducts(context.Background(), "berry", 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Berry Mug", products[0].Name)

	assert.Contains(t, last.Query, "or=")
	assert.Contains(t, last.Query, "ilike")
}

func TestSupabaseStore_UpdateProduct(t *testing.T) {
	body := `[{"id":"a3bb189e-8bf9-3888-9912-ace4e6543002","name":"Berry Mug XL","price":"499.00","stock_quantity":5}]`
	server, last := newPostgRESTDouble(t, http.StatusOK, body, "")
	store := newTestStore(t, server)

	name := "Berry Mug XL"
	price := decimal.NewFromInt(499)
	product, err := store.UpdateProduct(context.Background(), "a3bb189e-8bf9-3888-9912-ace4e6543002", models.ProductUpdate{
		Name:  &name,
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Berry Mug XL", product.Name)

	assert.Equal(t, http.MethodPatch, last.Method)
	assert.True(t, strings.HasSuffix(last.Path, "/products"), "unexpected path %s", last.Path)
	assert.Contains(t, last.Query, "id=eq.a3bb189e-8bf9-3888-9912-ace4e6543002")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(last.Body), &payload))
	assert.Equal(t, "Berry Mug XL", payload["name"])
	assert.NotContains(t, payload, "stock_quantity", "nil fields stay out of the patch")
}

func TestSupabaseStore_ListOrdersStatusFilter(t *testing.T) {
	server, last := newPostgRESTDouble(t, http.StatusOK, `[]`, "")
	store := newTestStore(t, server)

	orders, err := store.ListOrders(context.Background(), 10, "shipped", "")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Contains(t, last.Query, "status=eq.shipped")
}

func TestSupabaseStore_ErrorPropagates(t *testing.T) {
	server, _ := newPostgRESTDouble(t, http.StatusInternalServerError, `{"message":"boom"}`, "")
	store := newTestStore(t, server)

	_, _, err := store.ListExpenses(context.Background(), 1, 0)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, storage.ErrNotFound), "server errors must not look like not-found")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "berry-mug", slugify("Berry Mug"))
	assert.Equal(t, "a-b-c", slugify("A B/C"))
}
