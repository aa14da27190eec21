// Package v1 implements the native REST API.
package v1

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/metadata"
	"github.com/vmunix/renamarr/internal/presets"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Config holds API server configuration.
type Config struct {
	Version string
	// AllowedOrigins lists websocket origins. Empty means same-origin only;
	// "*" allows any origin.
	AllowedOrigins []string
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
	log  *slog.Logger
}

// New creates a v1 API server.
func New(deps ServerDeps, cfg Config, log *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, errors.Join(ErrMissingDependency, err)
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{deps: deps, cfg: cfg, log: log.With("component", "api")}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Jobs
	mux.HandleFunc("POST /api/v1/jobs", s.createJob)
	mux.HandleFunc("GET /api/v1/jobs", s.listJobs)
	mux.HandleFunc("GET /api/v1/jobs/{id}", s.getJob)
	mux.HandleFunc("POST /api/v1/jobs/{id}/cancel", s.cancelJob)
	mux.HandleFunc("DELETE /api/v1/jobs/{id}", s.deleteJob)
	mux.HandleFunc("GET /api/v1/jobs/{id}/events", s.requireEventLog(s.listJobEvents))
	mux.HandleFunc("GET /api/v1/jobs/{id}/ws", s.requireBus(s.streamJob))

	// Media
	mux.HandleFunc("POST /api/v1/parse", s.parse)
	mux.HandleFunc("POST /api/v1/match", s.match)
	mux.HandleFunc("POST /api/v1/rename", s.rename)
	mux.HandleFunc("POST /api/v1/search", s.search)
	mux.HandleFunc("POST /api/v1/scan", s.scan)
	mux.HandleFunc("POST /api/v1/checksum", s.checksum)

	// Presets
	mux.HandleFunc("GET /api/v1/presets", s.requirePresets(s.listPresets))
	mux.HandleFunc("POST /api/v1/presets", s.requirePresets(s.savePreset))
	mux.HandleFunc("DELETE /api/v1/presets/{name}", s.requirePresets(s.deletePreset))
	mux.HandleFunc("POST /api/v1/presets/{name}/rename", s.requirePresets(s.renamePreset))

	// History
	mux.HandleFunc("GET /api/v1/history", s.requireHistory(s.listHistory))
	mux.HandleFunc("POST /api/v1/history/undo", s.requireHistory(s.undo))
	mux.HandleFunc("POST /api/v1/history/redo", s.requireHistory(s.redo))

	// System
	mux.HandleFunc("GET /api/v1/health", s.health)
	mux.HandleFunc("GET /api/v1/naming-tokens", s.namingTokens)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeRequest reads a JSON body into v and validates it. On failure it
// writes the error response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return false
	}
	if err := validateRequest(v); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return false
	}
	return true
}

// writeRunnerError maps pipeline setup errors to responses.
func writeRunnerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, metadata.ErrUnsupportedSource):
		writeError(w, http.StatusBadRequest, "INVALID_SOURCE", err.Error())
	case errors.Is(err, presets.ErrPresetNotFound):
		writeError(w, http.StatusBadRequest, "PRESET_NOT_FOUND", err.Error())
	case errors.Is(err, metadata.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "NOT_CONFIGURED", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "TIMEOUT", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:     "ok",
		Version:    s.cfg.Version,
		TMDBKeySet: s.deps.Searcher.Configured(),
		TVDBKeySet: s.deps.Searcher.TVDBConfigured(),
		Jobs:       make(map[string]int),
	}
	if s.deps.MediaInfo != nil {
		resp.MediaInfoAvailable = s.deps.MediaInfo.Available()
	}
	counts := s.deps.Jobs.Counts()
	for _, status := range jobStatuses {
		resp.Jobs[string(status)] = counts[status]
	}

	if s.deps.Plex != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		_, err := s.deps.Plex.Identity(ctx)
		connected := err == nil
		if err != nil {
			s.log.Warn("plex unreachable", "error", err)
		}
		resp.PlexConnected = &connected
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) namingTokens(w http.ResponseWriter, r *http.Request) {
	resp := tokensResponse{Tokens: importer.Tokens}
	if s.deps.Presets != nil {
		list, err := s.deps.Presets.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
			return
		}
		resp.Presets = list
	}
	writeJSON(w, http.StatusOK, resp)
}

// jobStatuses are always reported by health, zero or not.
var jobStatuses = []jobs.Status{
	jobs.StatusPending, jobs.StatusRunning, jobs.StatusCompleted, jobs.StatusFailed, jobs.StatusCancelled,
}
