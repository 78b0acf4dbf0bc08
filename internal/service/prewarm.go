package service

import (
	"context"
	"log/slog"
	"time"
)

// Warmer periodically touches the hottest reads so their cache entries stay
// populated: the first shop page, the category list, and a configured set of
// CMS slugs. It re-warms slightly inside the cache TTL so visitors rarely pay
// the upstream latency themselves.
type Warmer struct {
	catalog  *CatalogService
	pages    *PageService
	slugs    []string
	interval time.Duration
	logger   *slog.Logger
}

// NewWarmer creates a cache warmer. slugs may be empty.
func NewWarmer(catalog *CatalogService, pages *PageService, slugs []string, interval time.Duration, logger *slog.Logger) *Warmer {
	return &Warmer{
		catalog:  catalog,
		pages:    pages,
		slugs:    slugs,
		interval: interval,
		logger:   logger,
	}
}

// Run warms the cache immediately and then on every tick until ctx is
// cancelled. Intended to run as a goroutine.
func (w *Warmer) Run(ctx context.Context) {
	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *Warmer) warm(ctx context.Context) {
	start := time.Now()

	if _, err := w.catalog.GetProducts(ctx, 1, 10); err != nil {
		w.logger.WarnContext(ctx, "prewarm products failed", slog.String("error", err.Error()))
	}
	if _, err := w.catalog.GetCategories(ctx); err != nil {
		w.logger.WarnContext(ctx, "prewarm categories failed", slog.String("error", err.Error()))
	}
	for _, s := range w.slugs {
		if _, err := w.pages.GetPage(ctx, s); err != nil {
			w.logger.WarnContext(ctx, "prewarm page failed",
				slog.String("slug", s),
				slog.String("error", err.Error()),
			)
		}
	}

	w.logger.DebugContext(ctx, "cache prewarm completed",
		slog.Duration("took", time.Since(start)),
	)
}
