package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ricciar/grape-ceramics/internal/cache"
	"github.com/Ricciar/grape-ceramics/internal/cart"
	"github.com/Ricciar/grape-ceramics/internal/domain"
	"github.com/Ricciar/grape-ceramics/internal/service"
	"github.com/Ricciar/grape-ceramics/internal/upstream/woocommerce"
	"github.com/Ricciar/grape-ceramics/internal/upstream/wordpress"
	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
	"github.com/Ricciar/grape-ceramics/pkg/health"
	"github.com/Ricciar/grape-ceramics/pkg/httputil"
)

// ============================================================================
// Stub upstream clients
// ============================================================================

type stubCommerce struct {
	products   []domain.Product
	totalPages int
	listErr    error

	orderResp *woocommerce.OrderResponse
	orderErr  error
	orders    []woocommerce.OrderPayload
}

func (s *stubCommerce) ListProducts(ctx context.Context, page, perPage int) ([]domain.Product, int, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	return s.products, s.totalPages, nil
}

func (s *stubCommerce) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", strconv.Itoa(id))
}

func (s *stubCommerce) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Name: "Vaser", Slug: "vaser"}}, nil
}

func (s *stubCommerce) CreateOrder(ctx context.Context, payload woocommerce.OrderPayload) (*woocommerce.OrderResponse, error) {
	s.orders = append(s.orders, payload)
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	return s.orderResp, nil
}

type stubContent struct {
	pages map[string]*domain.Page
}

func (s *stubContent) GetPageBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	if p, ok := s.pages[slug]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("page", slug)
}

var _ service.CommerceClient = (*stubCommerce)(nil)
var _ service.OrderClient = (*stubCommerce)(nil)
var _ service.ContentClient = (*stubContent)(nil)

// Ensure the real clients satisfy the same seams the stubs fake.
var _ service.CommerceClient = (*woocommerce.Client)(nil)
var _ service.OrderClient = (*woocommerce.Client)(nil)
var _ service.ContentClient = (*wordpress.Client)(nil)

// ============================================================================
// Test setup
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testEnv struct {
	router   chi.Router
	commerce *stubCommerce
	content  *stubContent
	carts    *cart.Store
}

func newTestEnv(t *testing.T, development bool) *testEnv {
	t.Helper()

	commerce := &stubCommerce{
		totalPages: 1,
		orderResp:  &woocommerce.OrderResponse{ID: 77, OrderKey: "wc_order_key"},
	}
	content := &stubContent{pages: map[string]*domain.Page{}}

	logger := testLogger()
	store := cache.NewMemory(time.Minute)
	carts := cart.NewStore()
	responder := httputil.NewResponder(logger, development)

	catalogSvc := service.NewCatalogService(commerce, store, logger)
	orderSvc := service.NewOrderService(commerce, nil, "https://shop.example.com/", logger)
	pageSvc := service.NewPageService(content, store, logger)

	router := NewRouter(RouterConfig{
		ServiceName: "storefront-test",
		Environment: "development",
	}, RouterDeps{
		Products:  NewProductHandler(catalogSvc, responder),
		Orders:    NewOrderHandler(orderSvc, carts, responder),
		Pages:     NewPageHandler(pageSvc, responder),
		Carts:     NewCartHandler(carts, catalogSvc, nil, responder),
		Health:    health.NewHandler(),
		Logger:    logger,
		Responder: responder,
	})

	return &testEnv{router: router, commerce: commerce, content: content, carts: carts}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func errorBodyOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httputil.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

// ============================================================================
// Product endpoint tests
// ============================================================================

func TestListProductsEndpoint(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.products = []domain.Product{
		{ID: 1, Name: "Vase"},
		{ID: 2, Name: "Kurs", Tags: []domain.TermRef{{Slug: "courses-one"}}},
	}
	env.commerce.totalPages = 3

	rec := env.do(t, http.MethodGet, "/api/products", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-Total-Pages"))

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Vase", products[0].Name)
}

func TestListCoursesEndpoint(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.products = []domain.Product{
		{ID: 1, Name: "Vase"},
		{ID: 2, Name: "Drejkurs", Tags: []domain.TermRef{{Slug: "courses-one"}}},
	}

	rec := env.do(t, http.MethodGet, "/api/courses", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Drejkurs", products[0].Name)
}

func TestGetProductEndpoint_InvalidID(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/api/products/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "product id must be a positive integer", errorBodyOf(t, rec))
}

func TestGetProductEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/api/products/999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute_FlatErrorBody(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/api/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", errorBodyOf(t, rec))
}

func TestUpstreamError_GenericMessageInProduction(t *testing.T) {
	env := newTestEnv(t, false)
	env.commerce.listErr = apperrors.BadGateway("secret upstream detail")

	rec := env.do(t, http.MethodGet, "/api/products", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "upstream request failed", errorBodyOf(t, rec))
}

func TestUpstreamError_OriginalMessageInDevelopment(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.listErr = apperrors.BadGateway("secret upstream detail")

	rec := env.do(t, http.MethodGet, "/api/products", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "secret upstream detail", errorBodyOf(t, rec))
}

// ============================================================================
// Page endpoint tests
// ============================================================================

func TestGetPageEndpoint(t *testing.T) {
	env := newTestEnv(t, true)
	env.content.pages["home"] = &domain.Page{
		ID:      1,
		Slug:    "home",
		Content: `<img src="https://cdn/hero.jpg">`,
	}

	rec := env.do(t, http.MethodGet, "/api/pages?slug=home", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var view service.PageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "https://cdn/hero.jpg", view.LeadImage)
	assert.Equal(t, "/shop", view.BuyLink)
}

func TestGetPageEndpoint_MissingSlug(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/api/pages", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Order endpoint tests
// ============================================================================

func TestCreateOrderEndpoint(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodPost, "/api/order", map[string]any{
		"payment_method": "klarna_payments",
		"line_items":     []map[string]int{{"product_id": 1, "quantity": 2}},
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var result domain.CheckoutResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 77, result.OrderID)
	assert.Equal(t, "https://shop.example.com/checkout/order-pay/77/?key=wc_order_key", result.CheckoutURL)

	require.Len(t, env.commerce.orders, 1)
	assert.False(t, env.commerce.orders[0].SetPaid)
}

func TestCreateOrderEndpoint_EmptyOrderRejected(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodPost, "/api/order", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.commerce.orders)
}

func TestCreateOrderEndpoint_MalformedJSON(t *testing.T) {
	env := newTestEnv(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/order", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderEndpoint_FromSessionCartAndClearsIt(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.products = []domain.Product{{ID: 5, Name: "Vase", Price: "399"}}

	// Fill the session cart.
	rec := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"product_id": 5, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookieFrom(t, rec)

	// Checkout without explicit line items.
	rec = env.do(t, http.MethodPost, "/api/order", map[string]any{}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, env.commerce.orders, 1)
	require.Len(t, env.commerce.orders[0].LineItems, 1)
	assert.Equal(t, 5, env.commerce.orders[0].LineItems[0].ProductID)
	assert.Equal(t, 2, env.commerce.orders[0].LineItems[0].Quantity)

	// The session cart is cleared after a successful checkout.
	rec = env.do(t, http.MethodGet, "/api/cart", nil, cookie)
	var c domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.True(t, c.IsEmpty())
}

func TestCreateOrderEndpoint_ExplicitLinesDoNotClearCart(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.products = []domain.Product{{ID: 5, Name: "Vase"}}

	rec := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"product_id": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookieFrom(t, rec)

	rec = env.do(t, http.MethodPost, "/api/order", map[string]any{
		"line_items": []map[string]int{{"product_id": 9, "quantity": 1}},
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", nil, cookie)
	var c domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, 1, c.ItemCount())
}

// ============================================================================
// Cart endpoint tests
// ============================================================================

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no cart session cookie set")
	return nil
}

func TestGetCartEndpoint_DoesNotMintSessionCookie(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/api/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, sessionCookie, c.Name)
	}
	var c domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Empty(t, c.Lines)
}

func TestCartSessionCookie_IssuedOnFirstMutation(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.products = []domain.Product{{ID: 5, Name: "Vase"}}

	rec := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"product_id": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookieFrom(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	rec = env.do(t, http.MethodGet, "/api/cart", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var c domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	require.Len(t, c.Lines, 1)
}

func TestAddCartItemEndpoint(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.products = []domain.Product{
		{ID: 5, Name: "Vase", Price: "399", Images: []domain.Image{{Src: "https://cdn/v.jpg"}}},
	}

	rec := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"product_id": 5})

	require.Equal(t, http.StatusOK, rec.Code)
	var c domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "Vase", c.Lines[0].Name)
	assert.Equal(t, "399", c.Lines[0].UnitPrice)
	assert.Equal(t, "https://cdn/v.jpg", c.Lines[0].ImageURL)
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestAddCartItemEndpoint_QuantityMerges(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.products = []domain.Product{{ID: 5, Name: "Vase"}}

	rec := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"product_id": 5})
	cookie := sessionCookieFrom(t, rec)

	rec = env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"product_id": 5, "quantity": 2}, cookie)

	var c domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
}

func TestAddCartItemEndpoint_UnknownProduct(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"product_id": 999})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveCartItemEndpoint(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.products = []domain.Product{{ID: 5, Name: "Vase"}}

	rec := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"product_id": 5})
	cookie := sessionCookieFrom(t, rec)

	rec = env.do(t, http.MethodDelete, "/api/cart/items/5", nil, cookie)

	require.Equal(t, http.StatusOK, rec.Code)
	var c domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.True(t, c.IsEmpty())
}

func TestClearCartEndpoint(t *testing.T) {
	env := newTestEnv(t, true)
	env.commerce.products = []domain.Product{{ID: 5, Name: "Vase"}}

	rec := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"product_id": 5})
	cookie := sessionCookieFrom(t, rec)

	rec = env.do(t, http.MethodDelete, "/api/cart", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", nil, cookie)
	var c domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.True(t, c.IsEmpty())
}

// ============================================================================
// Health endpoint tests
// ============================================================================

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
