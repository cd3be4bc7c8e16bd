package server

import "github.com/woniu9524/love-ludo-sub000/auth"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos.
// The path sets below must be kept in step with these routes.
const (
	// Public pages
	RouteIndex          = "/"
	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteAuth           = "/auth/"
	RouteAPIAuth        = "/api/auth/"
	RouteSessionExpired = "/session-expired"
	RouteUnauthorized   = "/unauthorized"

	// Game pages
	RouteLobby   = "/lobby"
	RouteGame    = "/game"
	RouteProfile = "/profile"
	RouteThemes  = "/themes"
	RouteHistory = "/history"
	RouteRenew   = "/renew"
	RouteExpired = "/expired"

	// API Routes
	RouteAPI   = "/api/"
	RouteAPIMe = "/api/me"

	// Admin Routes
	RouteAdmin          = "/admin"
	RouteAdminDashboard = "/admin/dashboard"

	// Operational Routes
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)

// Identity headers stamped on requests the access middleware lets through.
// Inbound copies are always removed first.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
	HeaderRequestID = "X-Request-Id"
)

// DefaultPathSets returns the access classes of the application routes.
func DefaultPathSets() auth.PathSets {
	return auth.PathSets{
		Admin: []string{RouteAdmin},
		Public: []string{
			RouteLogin,
			RouteRegister,
			RouteAuth,
			RouteAPIAuth,
			RouteSessionExpired,
			RouteUnauthorized,
		},
		Protected: []string{
			RouteLobby,
			RouteGame,
			RouteProfile,
			RouteThemes,
			RouteHistory,
			RouteRenew,
			RouteExpired,
			RouteAPI,
		},
	}
}

// DefaultRoutes returns the redirect destinations used by the access middleware.
func DefaultRoutes() auth.Routes {
	return auth.Routes{
		Login:          RouteLogin,
		ExpiryNotice:   RouteExpired,
		SessionExpired: RouteSessionExpired,
		Unauthorized:   RouteUnauthorized,
		AdminEntry:     RouteAdmin,
		AdminHome:      RouteAdminDashboard,
	}
}
