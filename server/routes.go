package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	s.router.Use(s.StandardMiddleware()...)
	s.router.NotFound(s.NotFoundHandler())

	s.RegisterRouteFunc(http.MethodGet, RouteIndex, s.PageHandler(indexPage))

	// Public pages
	s.RegisterRouteFunc(http.MethodGet, RouteLogin, s.PageHandler(loginPage))
	s.RegisterRouteFunc(http.MethodGet, RouteRegister, s.PageHandler(registerPage))
	s.RegisterRouteFunc(http.MethodGet, RouteSessionExpired, s.SessionExpiredHandler())
	s.RegisterRouteFunc(http.MethodGet, RouteUnauthorized, s.PageHandler(unauthorizedPage))

	// Game pages
	s.RegisterRouteFunc(http.MethodGet, RouteLobby, s.PageHandler(lobbyPage))
	s.RegisterRouteFunc(http.MethodGet, RouteGame, s.PageHandler(gamePage))
	s.RegisterRouteFunc(http.MethodGet, RouteGame+"/*", s.PageHandler(gamePage))
	s.RegisterRouteFunc(http.MethodGet, RouteProfile, s.PageHandler(profilePage))
	s.RegisterRouteFunc(http.MethodGet, RouteThemes, s.PageHandler(themesPage))
	s.RegisterRouteFunc(http.MethodGet, RouteHistory, s.PageHandler(historyPage))
	s.RegisterRouteFunc(http.MethodGet, RouteRenew, s.PageHandler(renewPage))
	s.RegisterRouteFunc(http.MethodGet, RouteExpired, s.PageHandler(expiredPage))

	// Admin pages
	s.RegisterRouteFunc(http.MethodGet, RouteAdmin, s.PageHandler(adminEntryPage))
	s.RegisterRouteFunc(http.MethodGet, RouteAdminDashboard, s.PageHandler(adminDashboardPage))
	s.RegisterRouteFunc(http.MethodGet, RouteAdmin+"/*", s.PageHandler(adminPage))

	// API routes
	s.RegisterRouteFunc(http.MethodGet, RouteAPIMe, s.MeHandler())

	// Operational routes
	s.RegisterRouteFunc(http.MethodGet, RouteHealth, s.HealthHandler())
	if s.metrics != nil {
		s.RegisterRouteHandler(http.MethodGet, RouteMetrics, s.metrics)
	}
}
