// Package proxy fetches anime-site pages on the frontend's behalf.
//
// The site has no public JSON API and blocks cross-origin reads, so the
// frontend asks this service for the raw markup and owns its interpretation.
package proxy

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aniview/aniview/internal/fetch"
)

// Service proxies anime detail and list pages as raw HTML.
type Service struct {
	fetcher *fetch.Fetcher
	baseURL string
}

// New builds a Service fetching from baseURL.
func New(fetcher *fetch.Fetcher, baseURL string) *Service {
	return &Service{fetcher: fetcher, baseURL: baseURL}
}

// Anime fetches the detail page for one anime id.
func (s *Service) Anime(ctx context.Context, id string) (string, error) {
	target := fmt.Sprintf("%s/anime/%s", s.baseURL, url.PathEscape(id))
	return s.fetcher.Get(ctx, target, nil)
}

// List fetches a user's anime list filtered by watch status.
func (s *Service) List(ctx context.Context, username, status string) (string, error) {
	target := fmt.Sprintf("%s/animelist/%s?status=%s",
		s.baseURL, url.PathEscape(username), url.QueryEscape(status))
	return s.fetcher.Get(ctx, target, nil)
}
