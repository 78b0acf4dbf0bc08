package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Ricciar/grape-ceramics/internal/cart"
	"github.com/Ricciar/grape-ceramics/internal/domain"
	"github.com/Ricciar/grape-ceramics/internal/service"
	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
	"github.com/Ricciar/grape-ceramics/pkg/httputil"
	"github.com/Ricciar/grape-ceramics/pkg/validator"
)

// orderRequest is the body of POST /api/order. line_items may be omitted, in
// which case the order is built from the visitor's session cart. set_paid is
// accepted for wire compatibility but always overridden to false.
type orderRequest struct {
	PaymentMethod      string           `json:"payment_method"`
	PaymentMethodTitle string           `json:"payment_method_title"`
	SetPaid            bool             `json:"set_paid"`
	Billing            *domain.Address  `json:"billing"`
	Shipping           *domain.Address  `json:"shipping"`
	LineItems          []orderLineInput `json:"line_items" validate:"omitempty,dive"`
}

type orderLineInput struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

// OrderHandler serves order creation.
type OrderHandler struct {
	orders    *service.OrderService
	carts     *cart.Store
	responder *httputil.Responder
}

// NewOrderHandler creates the order handler.
func NewOrderHandler(orders *service.OrderService, carts *cart.Store, responder *httputil.Responder) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts, responder: responder}
}

// Create handles POST /api/order. On success the session cart is cleared, but
// only when the order's lines actually came from it.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.responder.Error(w, r, apperrors.InvalidInput(err.Error()))
		return
	}
	if err := validator.Validate(req); err != nil {
		h.responder.ValidationError(w, err)
		return
	}

	lines := make([]domain.OrderLine, 0, len(req.LineItems))
	for _, l := range req.LineItems {
		lines = append(lines, domain.OrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	fromSession := false
	sid := cartSessionID(w, r, false)
	if len(lines) == 0 && sid != "" {
		for _, l := range h.carts.Get(sid).Lines {
			lines = append(lines, domain.OrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
		}
		fromSession = len(lines) > 0
	}

	domainReq := domain.OrderRequest{
		PaymentMethod:      req.PaymentMethod,
		PaymentMethodTitle: req.PaymentMethodTitle,
		Lines:              lines,
	}
	if req.Billing != nil {
		domainReq.Billing = *req.Billing
	}
	if req.Shipping != nil {
		domainReq.Shipping = *req.Shipping
	}

	result, err := h.orders.Create(r.Context(), domainReq)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	if fromSession {
		h.carts.Clear(sid)
	}

	h.responder.Created(w, result)
}

// decodeJSON decodes a request body into target, rejecting unknown fields
// and trailing garbage.
func decodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid request body: unexpected trailing data")
	}
	return nil
}
