// Package routing classifies inbound request paths into route decisions.
//
// The classifier is a pure function over the request path, query, and an
// injected file-existence predicate, so routing logic is testable without a
// live socket. The HTTP layer consumes exactly one Decision per request.
package routing

import (
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Kind enumerates the possible outcomes of classification.
type Kind int

const (
	// KindProxyAnime proxies the anime detail page for an id.
	KindProxyAnime Kind = iota
	// KindProxyList proxies the list-by-username-and-status page.
	KindProxyList
	// KindScrapePlaylist scrapes a playlist page into structured fields.
	KindScrapePlaylist
	// KindAppRoute is a known client-side route served by the app document.
	KindAppRoute
	// KindStaticFile serves an existing file from the asset directory.
	KindStaticFile
	// KindAppFallback serves the app document for an unknown extensionless path.
	KindAppFallback
	// KindNotFound matches nothing.
	KindNotFound
)

const (
	proxyAnimePrefix     = "/proxy-anime"
	proxyListPrefix      = "/proxy"
	scrapePlaylistPrefix = "/scrape-playlist"

	defaultListStatus = "1"
)

// Decision is the tagged outcome of classifying one request.
// Only the fields for the matching Kind are populated. A missing required
// query parameter (empty AnimeID, Username, or PlaylistID) is a caller
// error the handler answers with 400, not a classification failure.
type Decision struct {
	Kind       Kind
	AnimeID    string
	Username   string
	Status     string
	PlaylistID string
	// File is the request path of an existing static file, slash-separated.
	File string
}

// Classifier holds the fixed inputs classification depends on.
type Classifier struct {
	// AppRoutes are the exact paths the frontend router owns.
	AppRoutes []string
	// DataPrefix marks reserved data paths that never fall back to the app.
	DataPrefix string
	// FileExists reports whether a regular file exists for the request path.
	FileExists func(requestPath string) bool
}

// Classify inspects one request and produces its Decision.
// Rules are ordered; the first match wins. Proxy and scrape prefixes are
// checked before any filesystem lookup because they are never real files,
// and /proxy-anime must precede the /proxy prefix it shares.
func (c *Classifier) Classify(method, requestPath string, query url.Values) Decision {
	switch {
	case strings.HasPrefix(requestPath, proxyAnimePrefix):
		return Decision{Kind: KindProxyAnime, AnimeID: query.Get("id")}
	case strings.HasPrefix(requestPath, proxyListPrefix):
		status := query.Get("status")
		if status == "" {
			status = defaultListStatus
		}
		return Decision{Kind: KindProxyList, Username: query.Get("username"), Status: status}
	case strings.HasPrefix(requestPath, scrapePlaylistPrefix):
		return Decision{Kind: KindScrapePlaylist, PlaylistID: query.Get("id")}
	}

	if method == http.MethodGet && c.isAppRoute(requestPath) {
		return Decision{Kind: KindAppRoute}
	}

	if c.FileExists != nil && c.FileExists(requestPath) {
		return Decision{Kind: KindStaticFile, File: requestPath}
	}

	// SPA routes are extensionless by convention while asset requests always
	// carry an extension; unknown extensionless paths outside the reserved
	// data prefix serve the app so new client routes need no restart.
	if !strings.HasPrefix(requestPath, c.DataPrefix) && path.Ext(requestPath) == "" {
		return Decision{Kind: KindAppFallback}
	}

	return Decision{Kind: KindNotFound}
}

func (c *Classifier) isAppRoute(requestPath string) bool {
	for _, r := range c.AppRoutes {
		if requestPath == r {
			return true
		}
	}
	return false
}
