// Package scrape turns a playlist page into structured video identifiers.
package scrape

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aniview/aniview/internal/extract"
	"github.com/aniview/aniview/internal/fetch"
)

// Result is the structured outcome of scraping one playlist page.
// Invariant: VideoCount == len(VideoIDs), which holds no duplicates.
type Result struct {
	PlaylistID   string
	PlaylistName string
	VideoIDs     []string
	VideoCount   int
}

// Scraper fetches playlist pages and extracts their video identifiers.
type Scraper struct {
	fetcher *fetch.Fetcher
	baseURL string
}

// New builds a Scraper fetching from baseURL.
func New(fetcher *fetch.Fetcher, baseURL string) *Scraper {
	return &Scraper{fetcher: fetcher, baseURL: baseURL}
}

// Playlist fetches the playlist page for id and extracts its name and video
// identifiers. An empty identifier list is a valid zero-result scrape, not
// an error; only fetch failures return one.
func (s *Scraper) Playlist(ctx context.Context, id string) (Result, error) {
	target := fmt.Sprintf("%s/playlist?list=%s", s.baseURL, url.QueryEscape(id))
	html, err := s.fetcher.Get(ctx, target, map[string]string{
		"Accept-Language": "en-US,en;q=0.9",
	})
	if err != nil {
		return Result{}, fmt.Errorf("fetch playlist: %w", err)
	}

	name, ok := extract.PlaylistTitle(html)
	if !ok {
		name = id
	}

	ids := extract.VideoIDs(html)
	return Result{
		PlaylistID:   id,
		PlaylistName: name,
		VideoIDs:     ids,
		VideoCount:   len(ids),
	}, nil
}
