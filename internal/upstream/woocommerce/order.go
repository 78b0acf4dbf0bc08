package woocommerce

import (
	"fmt"
	"strings"

	"github.com/Ricciar/grape-ceramics/internal/domain"
)

// BuildOrderPayload translates the storefront order representation into the
// upstream order-creation payload. SetPaid is forced to false (the upstream
// store owns payment capture). A completely absent billing address falls back
// to the fixed placeholder; an absent shipping address defaults to billing.
// Line items are mapped 1:1 with no quantity validation against stock.
func BuildOrderPayload(req domain.OrderRequest) OrderPayload {
	billing := req.Billing
	if billing.IsZero() {
		billing = domain.PlaceholderAddress()
	}

	shipping := req.Shipping
	if shipping.IsZero() {
		shipping = billing
	}

	lines := make([]orderLineItem, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, orderLineItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	return OrderPayload{
		PaymentMethod:      req.PaymentMethod,
		PaymentMethodTitle: req.PaymentMethodTitle,
		SetPaid:            false,
		Billing:            toOrderAddress(billing),
		Shipping:           toOrderAddress(shipping),
		LineItems:          lines,
	}
}

// BuildCheckoutResult translates the upstream order response into the
// checkout redirect. The URL format is a hard contract with the upstream
// store's order-pay flow.
func BuildCheckoutResult(resp *OrderResponse, storeBaseURL string) domain.CheckoutResult {
	base := storeBaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return domain.CheckoutResult{
		OrderID:     resp.ID,
		CheckoutURL: fmt.Sprintf("%scheckout/order-pay/%d/?key=%s", base, resp.ID, resp.OrderKey),
	}
}
