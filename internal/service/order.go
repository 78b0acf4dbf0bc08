package service

import (
	"context"
	"log/slog"

	"github.com/Ricciar/grape-ceramics/internal/domain"
	"github.com/Ricciar/grape-ceramics/internal/event"
	"github.com/Ricciar/grape-ceramics/internal/upstream/woocommerce"
	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
)

// Fallback payment method when the caller supplies none. The upstream store's
// checkout page lets the customer pick the real one after the redirect.
const (
	defaultPaymentMethod      = "klarna_payments"
	defaultPaymentMethodTitle = "Klarna"
)

// OrderClient is the slice of the upstream commerce API order creation needs.
type OrderClient interface {
	CreateOrder(ctx context.Context, payload woocommerce.OrderPayload) (*woocommerce.OrderResponse, error)
}

// OrderService turns storefront order requests into upstream orders and
// checkout redirects.
type OrderService struct {
	client       OrderClient
	events       *event.Producer
	storeBaseURL string
	logger       *slog.Logger
}

// NewOrderService creates the order service. events may be nil.
func NewOrderService(client OrderClient, events *event.Producer, storeBaseURL string, logger *slog.Logger) *OrderService {
	return &OrderService{
		client:       client,
		events:       events,
		storeBaseURL: storeBaseURL,
		logger:       logger,
	}
}

// Create validates the request, places the order upstream, and returns the
// checkout redirect. An empty cart is rejected before any network call.
func (s *OrderService) Create(ctx context.Context, req domain.OrderRequest) (*domain.CheckoutResult, error) {
	if len(req.Lines) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one line item")
	}
	for _, l := range req.Lines {
		if l.ProductID <= 0 {
			return nil, apperrors.InvalidInput("line item product_id must be positive")
		}
		if l.Quantity <= 0 {
			return nil, apperrors.InvalidInput("line item quantity must be positive")
		}
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = defaultPaymentMethod
		req.PaymentMethodTitle = defaultPaymentMethodTitle
	}

	payload := woocommerce.BuildOrderPayload(req)
	resp, err := s.client.CreateOrder(ctx, payload)
	if err != nil {
		return nil, err
	}

	result := woocommerce.BuildCheckoutResult(resp, s.storeBaseURL)

	var itemCount int
	for _, l := range req.Lines {
		itemCount += l.Quantity
	}
	s.events.OrderCreated(ctx, result, len(req.Lines), itemCount)

	s.logger.InfoContext(ctx, "order created",
		slog.Int("order_id", result.OrderID),
		slog.Int("line_count", len(req.Lines)),
	)

	return &result, nil
}
