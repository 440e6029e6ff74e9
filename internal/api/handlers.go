package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aniview/aniview/internal/routing"
	"github.com/aniview/aniview/internal/store"
	"github.com/aniview/aniview/internal/telemetry"
)

type proxyResponse struct {
	HTML string `json:"html"`
}

type scrapeResponse struct {
	Success      bool     `json:"success"`
	PlaylistID   string   `json:"playlistId"`
	PlaylistName string   `json:"playlistName"`
	VideoIDs     []string `json:"videoIds"`
	VideoCount   int      `json:"videoCount"`
}

type scrapeFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type saveResponse struct {
	Success bool `json:"success"`
}

// dispatch consumes one routing decision per GET request.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	decision := s.classifier.Classify(r.Method, r.URL.Path, r.URL.Query())

	switch decision.Kind {
	case routing.KindProxyAnime:
		s.proxyAnime(w, r, decision.AnimeID)
	case routing.KindProxyList:
		s.proxyList(w, r, decision.Username, decision.Status)
	case routing.KindScrapePlaylist:
		s.scrapePlaylist(w, r, decision.PlaylistID)
	case routing.KindAppRoute, routing.KindAppFallback:
		s.serveApp(w, r)
	case routing.KindStaticFile:
		s.serveStatic(w, r, decision.File)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (s *Server) proxyAnime(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing anime id parameter")
		return
	}
	html, err := s.proxy.Anime(r.Context(), id)
	telemetry.ObserveUpstreamFetch("anime", err)
	if err != nil {
		s.logger.Warn("anime proxy fetch failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching anime page: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, proxyResponse{HTML: html})
}

func (s *Server) proxyList(w http.ResponseWriter, r *http.Request, username, status string) {
	if username == "" {
		writeError(w, http.StatusBadRequest, "Missing username parameter")
		return
	}
	html, err := s.proxy.List(r.Context(), username, status)
	telemetry.ObserveUpstreamFetch("list", err)
	if err != nil {
		s.logger.Warn("list proxy fetch failed", zap.String("username", username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching list page: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, proxyResponse{HTML: html})
}

// scrapePlaylist always answers 200: the frontend reads the success flag
// and treats transport and scrape failures identically. Only a missing id
// is a 400.
func (s *Server) scrapePlaylist(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing playlist id parameter")
		return
	}
	result, err := s.scraper.Playlist(r.Context(), id)
	telemetry.ObserveUpstreamFetch("playlist", err)
	if err != nil {
		s.logger.Warn("playlist scrape failed", zap.String("id", id), zap.Error(err))
		writeJSON(w, http.StatusOK, scrapeFailure{
			Success: false,
			Error:   fmt.Sprintf("Failed to fetch playlist: %v", err),
		})
		return
	}
	writeJSON(w, http.StatusOK, scrapeResponse{
		Success:      true,
		PlaylistID:   result.PlaylistID,
		PlaylistName: result.PlaylistName,
		VideoIDs:     result.VideoIDs,
		VideoCount:   result.VideoCount,
	})
}

func (s *Server) serveApp(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.static.Dir, s.static.AppFile))
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request, requestPath string) {
	full, ok := s.resolveStatic(requestPath)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	http.ServeFile(w, r, full)
}

func (s *Server) saveDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "document")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error reading request body: %v", err))
		return
	}
	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error parsing JSON body: %v", err))
		return
	}

	err = s.docs.Save(name, payload)
	telemetry.ObserveDocumentSave(name, err)
	if errors.Is(err, store.ErrUnknownDocument) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.logger.Error("document save failed", zap.String("document", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error saving %s: %v", name, err))
		return
	}

	// Save endpoints additionally advertise their allowed method.
	w.Header().Set("Access-Control-Allow-Methods", "POST")
	writeJSON(w, http.StatusOK, saveResponse{Success: true})
}
