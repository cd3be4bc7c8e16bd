package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/woniu9524/love-ludo-sub000/auth"
	"github.com/woniu9524/love-ludo-sub000/internal/config"
	"github.com/woniu9524/love-ludo-sub000/internal/metrics"
	"github.com/woniu9524/love-ludo-sub000/sessions"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Repos    auth.Repos       // Session source and profile reader
	Recorder metrics.Recorder // Defaults to metrics.Noop
	Metrics  http.Handler     // Served on /metrics when set
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	router   chi.Router
	routes   []string
	config   config.Config
	mediator *auth.Mediator
	sessions sessions.Source
	cookies  sessions.CookieNames
	recorder metrics.Recorder
	metrics  http.Handler
	cors     *cors.Cors

	pageTemplate *template.Template
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	adminFailure, err := auth.ParseAdminFailurePolicy(cfg.GetAdminFailurePolicy())
	if err != nil {
		return nil, fmt.Errorf("[Server New] %w", err)
	}
	protectedFailure, err := auth.ParseProtectedFailurePolicy(cfg.GetProtectedFailurePolicy())
	if err != nil {
		return nil, fmt.Errorf("[Server New] %w", err)
	}

	mediator, err := auth.NewMediator(deps.Repos, auth.MediatorConfig{
		Paths:            DefaultPathSets(),
		Routes:           DefaultRoutes(),
		AdminEmails:      cfg.GetAdminEmails(),
		Freshness:        auth.NewTimestampArbiter(cfg.GetSessionTolerance()),
		AdminFailure:     adminFailure,
		ProtectedFailure: protectedFailure,
	})
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create access mediator: %w", err)
	}

	pageTemplate, err := ParseTemplate("page.html")
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse page template: %w", err)
	}

	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.Noop{}
	}

	s := &Server{
		env:      cfg.GetEnv(),
		router:   chi.NewRouter(),
		config:   cfg,
		mediator: mediator,
		sessions: deps.Repos.Sessions,
		cookies: sessions.CookieNames{
			Access:  cfg.GetAccessCookieName(),
			Refresh: cfg.GetRefreshCookieName(),
		},
		recorder: recorder,
		metrics:  deps.Metrics,
		cors:     newCors(cfg),

		pageTemplate: pageTemplate,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func newCors(cfg config.CorsConfig) *cors.Cors {
	origins := cfg.GetAllowedOrigins()
	return cors.New(cors.Options{
		AllowOriginFunc:  origins.IsAllowedOrigin,
		AllowedMethods:   cfg.GetAllowedMethods(),
		AllowedHeaders:   cfg.GetAllowedHeaders(),
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: true, // Required for cookie-based sessions
		MaxAge:           86400,
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(method, pattern string, handler http.Handler) {
	s.routes = append(s.routes, method+" "+pattern)
	s.router.Method(method, pattern, handler)
}

func (s *Server) RegisterRouteFunc(method, pattern string, handler http.HandlerFunc) {
	s.RegisterRouteHandler(method, pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	log.Info().Str("origins", s.config.GetAllowedOrigins().String()).Msg("CORS enabled for /api/")
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
