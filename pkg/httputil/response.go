package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
	"github.com/Ricciar/grape-ceramics/pkg/logger"
	"github.com/Ricciar/grape-ceramics/pkg/validator"
)

// ErrorBody is the storefront error contract: a single human-readable message.
// The browser client renders this string directly, so the shape stays flat.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Responder writes storefront responses and decides how much upstream error
// detail to expose. In development the original upstream message is passed
// through; in production a generic message is returned and the original is
// only logged.
type Responder struct {
	logger      *slog.Logger
	development bool
}

// NewResponder creates a Responder. Set development to true to expose
// upstream error messages to clients.
func NewResponder(l *slog.Logger, development bool) *Responder {
	return &Responder{logger: l, development: development}
}

// OK writes a 200 response with the given payload.
func (rs *Responder) OK(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, v)
}

// Created writes a 201 response with the given payload.
func (rs *Responder) Created(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusCreated, v)
}

// Error writes the storefront error body for the given error. Request
// cancellation is suppressed: the client is gone, so no body is written.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || r.Context().Err() != nil {
		return
	}

	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = rs.logger
	}

	status := apperrors.HTTPStatus(err)
	message := messageFor(err, status)

	switch {
	case status == http.StatusBadGateway:
		// Upstream detail is logged server-side; clients only see it in development.
		l.ErrorContext(r.Context(), "upstream error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		if !rs.development {
			message = "upstream request failed"
		}
	case status >= http.StatusInternalServerError:
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		message = "an internal error occurred"
	}

	WriteJSON(w, status, ErrorBody{Error: message})
}

// ValidationError writes a 400 response for a request validation failure.
func (rs *Responder) ValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: valErr.Error()})
		return
	}
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: err.Error()})
}

// NotFoundHandler serves the storefront 404 body for unmatched routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, ErrorBody{Error: "not found"})
	}
}

// messageFor extracts the client-facing message from an error.
func messageFor(err error, status int) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if status == http.StatusBadRequest || status == http.StatusNotFound {
		return err.Error()
	}
	return http.StatusText(status)
}
