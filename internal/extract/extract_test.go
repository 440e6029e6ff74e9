package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoIDToken(i int) string {
	return fmt.Sprintf("%011d", i)
}

func embed(ids ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><script>var ytInitialData = {")
	for _, id := range ids {
		fmt.Fprintf(&b, `"videoId":"%s",`, id)
	}
	b.WriteString("};</script></body></html>")
	return b.String()
}

func TestPlaylistTitle_StripsSiteSuffix(t *testing.T) {
	t.Parallel()

	title, ok := PlaylistTitle("<head><title> Anime Openings - YouTube </title></head>")
	require.True(t, ok)
	assert.Equal(t, "Anime Openings", title)
}

func TestPlaylistTitle_NoTitleTag(t *testing.T) {
	t.Parallel()

	_, ok := PlaylistTitle("<html><body>no head here</body></html>")
	require.False(t, ok)
}

func TestPlaylistTitle_FirstMatchWins(t *testing.T) {
	t.Parallel()

	title, ok := PlaylistTitle("<title>first</title><title>second</title>")
	require.True(t, ok)
	assert.Equal(t, "first", title)
}

func TestVideoIDs_DedupesPreservingFirstOccurrence(t *testing.T) {
	t.Parallel()

	html := embed("aaaaaaaaaaa", "bbbbbbbbbbb", "aaaaaaaaaaa", "ccccccccccc")
	assert.Equal(t, []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc"}, VideoIDs(html))
}

func TestVideoIDs_TruncatesToCapAfterDedupe(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		ids = append(ids, videoIDToken(i))
	}
	got := VideoIDs(embed(ids...))
	require.Len(t, got, MaxVideoIDs)
	assert.Equal(t, ids[:MaxVideoIDs], got)
}

func TestVideoIDs_Idempotent(t *testing.T) {
	t.Parallel()

	html := embed("aaaaaaaaaaa", "bbbbbbbbbbb", "aaaaaaaaaaa")
	assert.Equal(t, VideoIDs(html), VideoIDs(html))
}

func TestVideoIDs_NoMatchesYieldsEmptySlice(t *testing.T) {
	t.Parallel()

	got := VideoIDs("<html><body>nothing embedded</body></html>")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestVideoIDs_RejectsWrongTokenLength(t *testing.T) {
	t.Parallel()

	// Ten- and twelve-character tokens are not identifiers.
	html := `{"videoId":"shortshort"}{"videoId":"toolongtoken"}`
	assert.Empty(t, VideoIDs(html))
}

func TestVideoIDs_AcceptsHyphenAndUnderscore(t *testing.T) {
	t.Parallel()

	html := embed("a-b_c-d_e-f")
	assert.Equal(t, []string{"a-b_c-d_e-f"}, VideoIDs(html))
}
