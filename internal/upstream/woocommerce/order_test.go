package woocommerce

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ricciar/grape-ceramics/internal/domain"
)

// ============================================================================
// BuildOrderPayload Tests
// ============================================================================

func TestBuildOrderPayload_PlaceholderBillingWhenAbsent(t *testing.T) {
	req := domain.OrderRequest{
		PaymentMethod: "klarna_payments",
		Lines:         []domain.OrderLine{{ProductID: 1, Quantity: 2}},
	}

	payload := BuildOrderPayload(req)

	assert.Equal(t, "Guest", payload.Billing.FirstName)
	assert.Equal(t, "Checkout", payload.Billing.LastName)
	assert.Equal(t, "SE", payload.Billing.Country)
}

func TestBuildOrderPayload_ShippingDefaultsToBilling(t *testing.T) {
	req := domain.OrderRequest{
		Billing: domain.Address{FirstName: "Anna", City: "Malmö", Country: "SE"},
		Lines:   []domain.OrderLine{{ProductID: 1, Quantity: 1}},
	}

	payload := BuildOrderPayload(req)

	assert.Equal(t, "Anna", payload.Shipping.FirstName)
	assert.Equal(t, "Malmö", payload.Shipping.City)
}

func TestBuildOrderPayload_ExplicitShippingKept(t *testing.T) {
	req := domain.OrderRequest{
		Billing:  domain.Address{FirstName: "Anna"},
		Shipping: domain.Address{FirstName: "Erik", City: "Lund"},
		Lines:    []domain.OrderLine{{ProductID: 1, Quantity: 1}},
	}

	payload := BuildOrderPayload(req)

	assert.Equal(t, "Erik", payload.Shipping.FirstName)
	assert.Equal(t, "Lund", payload.Shipping.City)
}

func TestBuildOrderPayload_SetPaidAlwaysFalse(t *testing.T) {
	req := domain.OrderRequest{
		SetPaid: true,
		Lines:   []domain.OrderLine{{ProductID: 1, Quantity: 1}},
	}

	payload := BuildOrderPayload(req)

	assert.False(t, payload.SetPaid)
}

func TestBuildOrderPayload_LineItemsMapped(t *testing.T) {
	req := domain.OrderRequest{
		Lines: []domain.OrderLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 7, Quantity: 1},
		},
	}

	payload := BuildOrderPayload(req)

	assert.Len(t, payload.LineItems, 2)
	assert.Equal(t, 1, payload.LineItems[0].ProductID)
	assert.Equal(t, 2, payload.LineItems[0].Quantity)
	assert.Equal(t, 7, payload.LineItems[1].ProductID)
}

// ============================================================================
// BuildCheckoutResult Tests
// ============================================================================

func TestBuildCheckoutResult_URLFormat(t *testing.T) {
	resp := &OrderResponse{ID: 123, OrderKey: "wc_order_abc"}

	result := BuildCheckoutResult(resp, "https://shop.example.com/")

	assert.Equal(t, 123, result.OrderID)
	assert.Equal(t, "https://shop.example.com/checkout/order-pay/123/?key=wc_order_abc", result.CheckoutURL)
}

func TestBuildCheckoutResult_AddsTrailingSlash(t *testing.T) {
	resp := &OrderResponse{ID: 5, OrderKey: "k"}

	result := BuildCheckoutResult(resp, "https://shop.example.com")

	assert.Equal(t, "https://shop.example.com/checkout/order-pay/5/?key=k", result.CheckoutURL)
}
