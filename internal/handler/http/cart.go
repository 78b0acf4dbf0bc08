package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ricciar/grape-ceramics/internal/cart"
	"github.com/Ricciar/grape-ceramics/internal/domain"
	"github.com/Ricciar/grape-ceramics/internal/event"
	"github.com/Ricciar/grape-ceramics/internal/service"
	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
	"github.com/Ricciar/grape-ceramics/pkg/httputil"
	"github.com/Ricciar/grape-ceramics/pkg/validator"
)

// sessionCookie identifies a visitor's cart across requests. The cookie is
// HttpOnly and unsigned; the worst forgery buys an attacker an empty cart.
const sessionCookie = "cart_session"

// CartHandler serves the session cart endpoints.
type CartHandler struct {
	carts     *cart.Store
	catalog   *service.CatalogService
	events    *event.Producer
	responder *httputil.Responder
}

// NewCartHandler creates the session cart handler. events may be nil.
func NewCartHandler(carts *cart.Store, catalog *service.CatalogService, events *event.Producer, responder *httputil.Responder) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, events: events, responder: responder}
}

// cartSessionID returns the visitor's session id from the cart cookie. When
// create is true and no cookie exists, a new session is minted and set on the
// response; otherwise "" is returned.
func cartSessionID(w http.ResponseWriter, r *http.Request, create bool) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if !create {
		return ""
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   7 * 24 * 60 * 60,
	})
	return id
}

// addItemRequest is the body of POST /api/cart/items. Quantity is a delta and
// defaults to 1; a negative delta decrements the line.
type addItemRequest struct {
	ProductID int  `json:"product_id" validate:"required,gt=0"`
	Quantity  *int `json:"quantity"`
}

// Get handles GET /api/cart. Reads never mint a session: a visitor without
// a cookie gets an empty cart and the cookie is issued on the first mutation.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid := cartSessionID(w, r, false)
	h.responder.OK(w, h.carts.Get(sid))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.responder.Error(w, r, apperrors.InvalidInput(err.Error()))
		return
	}
	if err := validator.Validate(req); err != nil {
		h.responder.ValidationError(w, err)
		return
	}

	delta := 1
	if req.Quantity != nil {
		delta = *req.Quantity
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	line := domain.CartLine{
		ProductID:   product.ID,
		Name:        product.Name,
		UnitPrice:   product.Price,
		Description: product.ShortDescription,
	}
	if len(product.Images) > 0 {
		line.ImageURL = product.Images[0].Src
	}

	sid := cartSessionID(w, r, true)
	updated := h.carts.Add(sid, line, delta)
	h.events.CartUpdated(r.Context(), sid, updated)

	h.responder.OK(w, updated)
}

// RemoveItem handles DELETE /api/cart/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		h.responder.Error(w, r, apperrors.InvalidInput("product id must be a positive integer"))
		return
	}

	sid := cartSessionID(w, r, true)
	updated := h.carts.Remove(sid, productID)
	h.events.CartUpdated(r.Context(), sid, updated)

	h.responder.OK(w, updated)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid := cartSessionID(w, r, true)
	h.carts.Clear(sid)
	h.events.CartUpdated(r.Context(), sid, &domain.Cart{})

	h.responder.OK(w, &domain.Cart{})
}
