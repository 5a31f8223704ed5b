// Package v1 implements the native REST API.
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/kinoscout/internal/kinopoisk"
	"github.com/vmunix/kinoscout/internal/sources"
)

const healthCheckTimeout = 5 * time.Second

// Config holds API server configuration.
type Config struct {
	Version string
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
	log  *slog.Logger
}

// NewWithDeps creates a new v1 API server with explicit dependencies.
func NewWithDeps(deps ServerDeps, cfg Config, log *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDependency, err)
	}
	if deps.Presenter == nil {
		deps.Presenter = sources.NewPresenter()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, cfg: cfg, log: log.With("component", "api")}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Films
	mux.HandleFunc("GET /api/v1/search", s.search)
	mux.HandleFunc("GET /api/v1/films/{id}", s.getFilm)
	mux.HandleFunc("GET /api/v1/films/{id}/sources", s.getSources)

	// System
	mux.HandleFunc("GET /api/v1/providers", s.listProviders)
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
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

// pathID extracts a positive integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, idStr)
	}
	return id, nil
}

// writeResolverError maps metadata lookup errors to HTTP responses.
func (s *Server) writeResolverError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, kinopoisk.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Film not found")
	case errors.Is(err, kinopoisk.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Metadata quota exhausted, try again later")
	default:
		s.log.Error("metadata lookup failed", "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Metadata service unavailable")
	}
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "q is required")
		return
	}

	films, err := s.deps.Resolver.SearchByKeyword(r.Context(), q)
	if err != nil {
		s.writeResolverError(w, err)
		return
	}

	resp := searchResponse{Query: q, Items: make([]filmSummaryResponse, 0, len(films)), Total: len(films)}
	for _, f := range films {
		resp.Items = append(resp.Items, filmSummaryToResponse(f))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	film, err := s.deps.Resolver.GetFilm(r.Context(), id)
	if err != nil {
		s.writeResolverError(w, err)
		return
	}

	resp := filmToResponse(film)
	trailer, err := s.deps.Resolver.TrailerURL(r.Context(), id)
	if err != nil {
		s.log.Warn("trailer lookup failed", "kinopoisk_id", id, "error", err)
	}
	resp.TrailerURL = trailer
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getSources(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	film, err := s.deps.Resolver.GetFilm(r.Context(), id)
	if err != nil {
		s.writeResolverError(w, err)
		return
	}

	agg := s.deps.Finder.FindSources(r.Context(), film.Movie())
	writeJSON(w, http.StatusOK, sourcesResponse{
		FilmID:   film.KinopoiskID,
		Title:    film.Title(),
		Sources:  s.deps.Presenter.Present(agg.Results),
		Outcomes: outcomesToResponse(agg.Outcomes),
	})
}

func (s *Server) listProviders(w http.ResponseWriter, r *http.Request) {
	names := s.deps.Finder.Providers()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, providersResponse{Providers: names})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:    "ok",
		Version:   s.cfg.Version,
		Providers: len(s.deps.Finder.Providers()),
	}
	for _, hc := range s.deps.Checks {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := hc.Check(ctx)
		cancel()

		check := checkResponse{Name: hc.Name, Status: "ok"}
		if err != nil {
			s.log.Warn("health check failed", "check", hc.Name, "error", err)
			check.Status = "error"
			check.Error = err.Error()
			resp.Status = "degraded"
		}
		resp.Checks = append(resp.Checks, check)
	}
	writeJSON(w, http.StatusOK, resp)
}
