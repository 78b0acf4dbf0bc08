package service

import (
	"context"
	"log/slog"

	"github.com/Ricciar/grape-ceramics/internal/cache"
	"github.com/Ricciar/grape-ceramics/internal/content"
	"github.com/Ricciar/grape-ceramics/internal/domain"
	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
)

// ContentClient is the slice of the upstream content API the page service needs.
type ContentClient interface {
	GetPageBySlug(ctx context.Context, slug string) (*domain.Page, error)
}

// PageView is a CMS page enriched with the pieces the storefront extracts
// from its HTML. VideoURL and LeadImage are empty when absent; BuyLink always
// points somewhere, falling back to the shop root.
type PageView struct {
	domain.Page
	VideoURL  string `json:"video_url"`
	BuyLink   string `json:"buy_link"`
	LeadImage string `json:"lead_image"`
}

// PageService serves CMS pages through the TTL cache.
type PageService struct {
	client ContentClient
	cache  cache.Store
	logger *slog.Logger
}

// NewPageService creates the page service.
func NewPageService(client ContentClient, store cache.Store, logger *slog.Logger) *PageService {
	return &PageService{client: client, cache: store, logger: logger}
}

// GetPage returns a CMS page by slug with the extracted content pieces.
func (s *PageService) GetPage(ctx context.Context, slug string) (*PageView, error) {
	key := "page:" + slug

	var cached PageView
	if fromCache(ctx, s.cache, s.logger, key, &cached) {
		return &cached, nil
	}

	page, err := s.client.GetPageBySlug(ctx, slug)
	if err != nil {
		return nil, apperrors.Wrap(err, "get page "+slug)
	}

	view := &PageView{
		Page:      *page,
		VideoURL:  content.VideoURL(page.Content),
		BuyLink:   content.BuyLink(page.Content),
		LeadImage: content.LeadImage(page.Content),
	}

	toCache(ctx, s.cache, s.logger, key, view)
	return view, nil
}
