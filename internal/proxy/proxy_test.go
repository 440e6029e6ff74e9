package proxy_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniview/aniview/internal/fetch"
	"github.com/aniview/aniview/internal/proxy"
)

func newUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestAnime_FetchesDetailPage(t *testing.T) {
	t.Parallel()

	var gotPath string
	ts := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("<html>anime detail</html>"))
	})

	svc := proxy.New(fetch.New(fetch.Config{UserAgent: "ua"}), ts.URL)
	html, err := svc.Anime(context.Background(), "5114")
	require.NoError(t, err)
	assert.Equal(t, "/anime/5114", gotPath)
	assert.Equal(t, "<html>anime detail</html>", html)
}

func TestList_FetchesListWithStatus(t *testing.T) {
	t.Parallel()

	var gotPath, gotStatus string
	ts := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStatus = r.URL.Query().Get("status")
		_, _ = w.Write([]byte("<html>list</html>"))
	})

	svc := proxy.New(fetch.New(fetch.Config{UserAgent: "ua"}), ts.URL)
	html, err := svc.List(context.Background(), "somebody", "2")
	require.NoError(t, err)
	assert.Equal(t, "/animelist/somebody", gotPath)
	assert.Equal(t, "2", gotStatus)
	assert.Equal(t, "<html>list</html>", html)
}

func TestList_EscapesUsername(t *testing.T) {
	t.Parallel()

	var gotPath string
	ts := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("ok"))
	})

	svc := proxy.New(fetch.New(fetch.Config{UserAgent: "ua"}), ts.URL)
	_, err := svc.List(context.Background(), "user name", "1")
	require.NoError(t, err)
	assert.Equal(t, "/animelist/user%20name", gotPath)
}

func TestAnime_UpstreamFailureSurfaces(t *testing.T) {
	t.Parallel()

	ts := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	svc := proxy.New(fetch.New(fetch.Config{UserAgent: "ua"}), ts.URL)
	_, err := svc.Anime(context.Background(), "1")
	assert.Error(t, err)
}
