package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ricciar/grape-ceramics/internal/domain"
	apperrors "github.com/Ricciar/grape-ceramics/pkg/errors"
	"github.com/Ricciar/grape-ceramics/pkg/httpclient"
)

const apiPath = "/wp-json/wp/v2"

// rawRendered is the {rendered: "..."} wrapper the content API puts around
// title, content, and excerpt fields.
type rawRendered struct {
	Rendered string `json:"rendered"`
}

// rawPage is an upstream CMS page record.
type rawPage struct {
	ID      int         `json:"id"`
	Slug    string      `json:"slug"`
	Link    string      `json:"link"`
	Title   rawRendered `json:"title"`
	Content rawRendered `json:"content"`
	Excerpt rawRendered `json:"excerpt"`
}

// Config holds the upstream content API connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches slug-addressed pages from the upstream content API. The API
// is public: no credentials are attached.
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates an upstream content API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	hc := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}

	return &Client{
		http:    httpclient.New(hc),
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// GetPageBySlug fetches a CMS page by its slug. The upstream returns an array
// even for a unique slug; an empty array means the page does not exist.
func (c *Client) GetPageBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	q := url.Values{}
	q.Set("slug", slug)

	resp, err := c.http.Get(ctx, c.baseURL+apiPath+"/pages?"+q.Encode())
	if err != nil {
		return nil, apperrors.BadGateway(fmt.Sprintf("get page %q: %v", slug, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.BadGateway(fmt.Sprintf("get page %q: upstream status %d", slug, resp.StatusCode))
	}

	var raw []rawPage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperrors.BadGateway(fmt.Sprintf("decode page %q: %v", slug, err))
	}

	if len(raw) == 0 {
		return nil, apperrors.NotFound("page", slug)
	}

	p := raw[0]
	return &domain.Page{
		ID:      p.ID,
		Slug:    p.Slug,
		Title:   p.Title.Rendered,
		Content: p.Content.Rendered,
		Excerpt: p.Excerpt.Rendered,
		Link:    p.Link,
	}, nil
}
