package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ricciar/grape-ceramics/internal/domain"
	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
	"github.com/Ricciar/grape-ceramics/pkg/httpclient"
)

const apiPath = "/wp-json/wc/v3"

// productFields restricts list responses to the fields the storefront maps,
// keeping upstream payloads small.
const productFields = "id,name,images,description,short_description," +
	"price,regular_price,sale_price,prices,stock_status,stock_quantity,categories,tags"

// Config holds the upstream commerce API connection settings.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// Client issues authenticated requests to the upstream commerce API and maps
// responses to the canonical domain shapes. Calls are not retried: a failed
// call propagates as an error to the caller.
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates an upstream commerce API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	hc := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}
	hc.Username = cfg.ConsumerKey
	hc.Password = cfg.ConsumerSecret

	return &Client{
		http:    httpclient.New(hc),
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// ListProducts fetches one page of published products and returns the mapped
// records plus the total page count reported by the upstream.
func (c *Client) ListProducts(ctx context.Context, page, perPage int) ([]domain.Product, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("status", "publish")
	q.Set("_fields", productFields)

	resp, err := c.http.Get(ctx, c.baseURL+apiPath+"/products?"+q.Encode())
	if err != nil {
		return nil, 0, apperrors.BadGateway(fmt.Sprintf("list products: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, c.parseError(resp, "list products")
	}

	var raw []rawProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, 0, apperrors.BadGateway(fmt.Sprintf("decode products: %v", err))
	}

	products := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		products = append(products, mapProduct(r))
	}

	totalPages := 1
	if v := resp.Header.Get("X-WP-TotalPages"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			totalPages = n
		}
	}

	return products, totalPages, nil
}

// GetProduct fetches and maps a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	resp, err := c.http.Get(ctx, fmt.Sprintf("%s%s/products/%d", c.baseURL, apiPath, id))
	if err != nil {
		return nil, apperrors.BadGateway(fmt.Sprintf("get product %d: %v", id, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFound("product", strconv.Itoa(id))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp, "get product")
	}

	var raw rawProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperrors.BadGateway(fmt.Sprintf("decode product: %v", err))
	}

	p := mapProduct(raw)
	return &p, nil
}

// ListCategories fetches and maps all product categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	q := url.Values{}
	q.Set("per_page", "100")

	resp, err := c.http.Get(ctx, c.baseURL+apiPath+"/products/categories?"+q.Encode())
	if err != nil {
		return nil, apperrors.BadGateway(fmt.Sprintf("list categories: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp, "list categories")
	}

	var raw []rawCategory
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperrors.BadGateway(fmt.Sprintf("decode categories: %v", err))
	}

	categories := make([]domain.Category, 0, len(raw))
	for _, r := range raw {
		categories = append(categories, mapCategory(r))
	}

	return categories, nil
}

// CreateOrder forwards a pre-built order payload to the upstream order API
// and returns the raw upstream response.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (*OrderResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("marshal order payload: %w", err))
	}

	resp, err := c.http.Post(ctx, c.baseURL+apiPath+"/orders", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.BadGateway(fmt.Sprintf("create order: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp, "create order")
	}

	var order OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, apperrors.BadGateway(fmt.Sprintf("decode order response: %v", err))
	}

	return &order, nil
}

// parseError translates a non-2xx upstream response into a 502 AppError.
// When the body carries the upstream's structured {code, message} shape, the
// message is surfaced; otherwise the status and a body snippet are used.
func (c *Client) parseError(resp *http.Response, op string) error {
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperrors.BadGateway(fmt.Sprintf("%s: upstream status %d (unreadable body: %v)", op, resp.StatusCode, err))
	}

	var upstream errorBody
	if json.Unmarshal(bodyBytes, &upstream) == nil && upstream.Message != "" {
		c.logger.Error("upstream commerce API error",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("code", upstream.Code),
			slog.String("message", upstream.Message),
		)
		return apperrors.BadGateway(upstream.Message)
	}

	return apperrors.BadGateway(fmt.Sprintf("%s: upstream status %d: %s", op, resp.StatusCode, truncate(string(bodyBytes), 200)))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
