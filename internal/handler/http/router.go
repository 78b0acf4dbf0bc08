package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ricciar/grape-ceramics/pkg/health"
	"github.com/Ricciar/grape-ceramics/pkg/httputil"
	"github.com/Ricciar/grape-ceramics/pkg/middleware"
)

// RouterConfig holds the cross-cutting settings the router needs.
type RouterConfig struct {
	ServiceName    string
	Environment    string
	AllowedOrigins []string
	PprofCIDRs     []string
	RequestTimeout time.Duration
}

// RouterDeps bundles the handlers and infrastructure the router mounts.
type RouterDeps struct {
	Products  *ProductHandler
	Orders    *OrderHandler
	Pages     *PageHandler
	Carts     *CartHandler
	Health    *health.Handler
	Logger    *slog.Logger
	Responder *httputil.Responder
}

// NewRouter assembles the storefront's HTTP routes and middleware chain.
func NewRouter(cfg RouterConfig, deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(timeout))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		ExposedHeaders:   []string{"X-Correlation-ID", totalPagesHeader},
		AllowCredentials: true,
		Environment:      cfg.Environment,
	}))

	r.NotFound(httputil.NotFoundHandler())
	r.MethodNotAllowed(httputil.NotFoundHandler())

	r.Get("/health", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofCIDRs, deps.Logger)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.CacheControl(60)).Group(func(r chi.Router) {
			r.Get("/products", deps.Products.List)
			r.Get("/products/{id}", deps.Products.Get)
			r.Get("/courses", deps.Products.ListCourses)
			r.Get("/category", deps.Products.ListCategories)
			r.Get("/pages", deps.Pages.Get)
		})

		r.Post("/order", deps.Orders.Create)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Carts.Get)
			r.Delete("/", deps.Carts.Clear)
			r.Post("/items", deps.Carts.AddItem)
			r.Delete("/items/{productId}", deps.Carts.RemoveItem)
		})
	})

	return r
}
