package woocommerce

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testClient(t *testing.T, upstream http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL:        srv.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	}, testLogger())
}

// ============================================================================
// ListProducts Tests
// ============================================================================

func TestListProducts_Success(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "publish", r.URL.Query().Get("status"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "ck_test", user)
		assert.Equal(t, "cs_test", pass)

		w.Header().Set("X-WP-TotalPages", "7")
		_ = json.NewEncoder(w).Encode([]rawProduct{
			{ID: 1, Name: "Vase", Price: "39900"},
			{ID: 2, Name: "Bowl", Price: "250"},
		})
	})

	products, totalPages, err := client.ListProducts(context.Background(), 2, 10)

	require.NoError(t, err)
	assert.Equal(t, 7, totalPages)
	require.Len(t, products, 2)
	assert.Equal(t, "399", products[0].Price)
	assert.Equal(t, "250", products[1].Price)
}

func TestListProducts_MissingTotalPagesDefaultsToOne(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]rawProduct{})
	})

	_, totalPages, err := client.ListProducts(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, totalPages)
}

func TestListProducts_UpstreamErrorMessageSurfaced(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorBody{Code: "woocommerce_rest_error", Message: "store is down"})
	})

	_, _, err := client.ListProducts(context.Background(), 1, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Equal(t, "store is down", appErr.Message)
}

// ============================================================================
// GetProduct Tests
// ============================================================================

func TestGetProduct_Success(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(rawProduct{ID: 42, Name: "Vase"})
	})

	p, err := client.GetProduct(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, 42, p.ID)
	assert.Equal(t, "Vase", p.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProduct(context.Background(), 999)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// ListCategories Tests
// ============================================================================

func TestListCategories_Success(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/categories", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode([]rawCategory{
			{ID: 1, Name: "Vaser", Slug: "vaser"},
		})
	})

	categories, err := client.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "vaser", categories[0].Slug)
}

// ============================================================================
// CreateOrder Tests
// ============================================================================

func TestCreateOrder_Success(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/wc/v3/orders", r.URL.Path)

		var payload OrderPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.False(t, payload.SetPaid)
		assert.Len(t, payload.LineItems, 1)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(OrderResponse{ID: 55, OrderKey: "wc_order_xyz", Status: "pending"})
	})

	resp, err := client.CreateOrder(context.Background(), OrderPayload{
		PaymentMethod: "klarna_payments",
		LineItems:     []orderLineItem{{ProductID: 1, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, 55, resp.ID)
	assert.Equal(t, "wc_order_xyz", resp.OrderKey)
}

func TestCreateOrder_UpstreamRejection(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorBody{Code: "rest_invalid_param", Message: "invalid line item"})
	})

	_, err := client.CreateOrder(context.Background(), OrderPayload{})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Equal(t, "invalid line item", appErr.Message)
}
