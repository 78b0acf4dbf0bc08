// Package http wires the storefront's HTTP surface: routing, request
// decoding, and the storefront error contract.
package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ricciar/grape-ceramics/internal/service"
	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
	"github.com/Ricciar/grape-ceramics/pkg/httputil"
	"github.com/Ricciar/grape-ceramics/pkg/pagination"
)

// totalPagesHeader carries the upstream's total page count so the browser
// client can render paging controls without a second request.
const totalPagesHeader = "X-Total-Pages"

// ProductHandler serves the catalog read endpoints.
type ProductHandler struct {
	catalog   *service.CatalogService
	responder *httputil.Responder
}

// NewProductHandler creates the catalog handler.
func NewProductHandler(catalog *service.CatalogService, responder *httputil.Responder) *ProductHandler {
	return &ProductHandler{catalog: catalog, responder: responder}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	page, err := h.catalog.GetProducts(r.Context(), p.Page, p.PerPage)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	w.Header().Set(totalPagesHeader, strconv.Itoa(page.TotalPages))
	h.responder.OK(w, page.Products)
}

// ListCourses handles GET /api/courses.
func (h *ProductHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	page, err := h.catalog.GetCourses(r.Context(), p.Page, p.PerPage)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	w.Header().Set(totalPagesHeader, strconv.Itoa(page.TotalPages))
	h.responder.OK(w, page.Products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.responder.Error(w, r, apperrors.InvalidInput("product id must be a positive integer"))
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	h.responder.OK(w, product)
}

// ListCategories handles GET /api/category.
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.GetCategories(r.Context())
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	h.responder.OK(w, categories)
}
