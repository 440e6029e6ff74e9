// Package extract pulls structured fields out of semi-structured HTML.
//
// These are narrow text-pattern matchers over the raw markup, not general
// HTML parsers. The markers below are a versioned contract with the upstream
// site: if the markup changes, extraction yields an empty result rather than
// an error or a crash.
package extract

import (
	"regexp"
	"strings"
)

// MaxVideoIDs caps the extracted identifier sequence, applied after
// deduplication.
const MaxVideoIDs = 100

const titleSuffix = " - YouTube"

var (
	// titleRe matches the first <title> element, non-greedy, tag names
	// case-sensitive as in the source markup.
	titleRe = regexp.MustCompile(`<title>(.+?)</title>`)

	// videoIDRe matches the embedded-data encoding of video identifiers:
	// the "videoId" marker followed by an 11-character token drawn from
	// [A-Za-z0-9_-].
	videoIDRe = regexp.MustCompile(`"videoId":"([a-zA-Z0-9_-]{11})"`)
)

// PlaylistTitle extracts the page title, with the site-name suffix removed
// and surrounding whitespace trimmed. The second return is false when the
// page has no title tag; callers fall back to the raw identifier.
func PlaylistTitle(html string) (string, bool) {
	m := titleRe.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(strings.ReplaceAll(m[1], titleSuffix, "")), true
}

// VideoIDs returns every video identifier embedded in the page, in document
// order, deduplicated on first occurrence and truncated to MaxVideoIDs.
// No matches yields an empty (non-nil) slice, a valid zero-result scrape.
func VideoIDs(html string) []string {
	matches := videoIDRe.FindAllStringSubmatch(html, -1)

	ids := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		id := m[1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		if len(ids) == MaxVideoIDs {
			break
		}
	}
	return ids
}
