package transport

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rpggio/projtrack/internal/domain/project"
)

// ProjectService defines the queries served over HTTP.
type ProjectService interface {
	List(ctx context.Context, opts project.ListOptions) (*project.ProjectList, error)
	Get(ctx context.Context, name string) (*project.Project, error)
	ListByTeam(ctx context.Context, team string) (*project.TeamProjects, error)
	ListByTemplate(ctx context.Context, template string) (*project.TemplateProjects, error)
	SummarizeTeams(ctx context.Context) (*project.TeamsOverview, error)
	Statistics(ctx context.Context) (*project.Stats, error)
}

// Config wires the HTTP server.
type Config struct {
	Projects ProjectService
	// MCP is mounted at /mcp when non-nil.
	MCP     http.Handler
	Logger  *zap.Logger
	Version string
}

// Server wires HTTP handlers.
type Server struct {
	projects ProjectService
	logger   *zap.Logger
	version  string
}

// Banner is the body of GET /.
type Banner struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

var endpoints = []string{
	"/api/v1/projects",
	"/api/v1/projects/{project_name}",
	"/api/v1/teams/{team_name}/projects",
	"/api/v1/templates/{template_type}/projects",
	"/api/v1/teams",
	"/api/v1/stats",
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &Server{projects: cfg.Projects, logger: logger, version: cfg.Version}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		srv.writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		srv.writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", srv.handleIndex)
	r.Get("/health", srv.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", srv.handleListProjects)
		r.Get("/projects/{project_name}", srv.handleGetProject)
		r.Get("/teams", srv.handleListTeams)
		r.Get("/teams/{team_name}/projects", srv.handleTeamProjects)
		r.Get("/templates/{template_type}/projects", srv.handleTemplateProjects)
		r.Get("/stats", srv.handleStats)
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, Banner{
		Message:   "Project Tracking API",
		Version:   s.version,
		Endpoints: endpoints,
	})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	list, err := s.projects.List(r.Context(), project.ListOptions{
		Status: query.Get("status"),
		Limit:  parseLimit(query.Get("limit")),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Get(r.Context(), pathParam(r, "project_name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleTeamProjects(w http.ResponseWriter, r *http.Request) {
	team, err := s.projects.ListByTeam(r.Context(), pathParam(r, "team_name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleTemplateProjects(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.projects.ListByTemplate(r.Context(), pathParam(r, "template_type"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tmpl)
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	overview, err := s.projects.SummarizeTeams(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.projects.Statistics(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *project.NotFoundError
	if errors.As(err, &notFound) {
		s.writeDetail(w, http.StatusNotFound, notFound.Detail)
		return
	}

	requestID, _ := RequestIDFromContext(r.Context())
	s.logger.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestID),
		zap.Error(err),
	)
	s.writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}

// parseLimit reads the limit query parameter. Missing or malformed values
// fall back to the default page size.
func parseLimit(raw string) int {
	if raw == "" {
		return project.DefaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return project.DefaultLimit
	}
	return limit
}

// pathParam returns a decoded route parameter. chi routes on the raw path
// when the URL carries escapes such as %2F, leaving parameters encoded.
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}
