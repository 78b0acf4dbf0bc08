package http

import (
	"net/http"

	"github.com/Ricciar/grape-ceramics/internal/service"
	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
	"github.com/Ricciar/grape-ceramics/pkg/httputil"
)

// PageHandler serves CMS page reads.
type PageHandler struct {
	pages     *service.PageService
	responder *httputil.Responder
}

// NewPageHandler creates the CMS page handler.
func NewPageHandler(pages *service.PageService, responder *httputil.Responder) *PageHandler {
	return &PageHandler{pages: pages, responder: responder}
}

// Get handles GET /api/pages?slug=...
func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		h.responder.Error(w, r, apperrors.InvalidInput("slug query parameter is required"))
		return
	}

	page, err := h.pages.GetPage(r.Context(), slug)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	h.responder.OK(w, page)
}
