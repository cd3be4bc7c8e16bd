package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// page is the content of one of the placeholder pages. The real pages are served
// by the front end; these keep every gated route reachable end to end.
type page struct {
	Title    string
	Message  string
	Link     string
	LinkText string
}

var (
	indexPage          = page{Title: "Love Ludo", Link: RouteLobby, LinkText: "Enter the lobby"}
	loginPage          = page{Title: "Sign in", Link: RouteRegister, LinkText: "Create an account"}
	registerPage       = page{Title: "Create an account", Link: RouteLogin, LinkText: "Sign in"}
	unauthorizedPage   = page{Title: "Not allowed", Message: "This account cannot open the admin console.", Link: RouteLobby, LinkText: "Back to the lobby"}
	lobbyPage          = page{Title: "Lobby"}
	gamePage           = page{Title: "Game"}
	profilePage        = page{Title: "Profile"}
	themesPage         = page{Title: "Themes"}
	historyPage        = page{Title: "History"}
	renewPage          = page{Title: "Renew membership"}
	expiredPage        = page{Title: "Membership expired", Message: "Your membership has ended.", Link: RouteRenew, LinkText: "Renew"}
	adminEntryPage     = page{Title: "Admin sign in"}
	adminDashboardPage = page{Title: "Admin dashboard"}
	adminPage          = page{Title: "Admin"}
)

// pageData is what the page template renders.
type pageData struct {
	Title    string
	Message  string
	Link     string
	LinkText string
	AppName  string
	Email    string
	Role     string
}

func (s *Server) PageHandler(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, p)
	}
}

// SessionExpiredHandler explains that the account signed in somewhere else.
func (s *Server) SessionExpiredHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := page{
			Title:    "Signed in elsewhere",
			Message:  "This account was signed in on another device, so this session has ended.",
			Link:     RouteLogin,
			LinkText: "Sign in again",
		}
		if at := r.URL.Query().Get("last_login_time"); at != "" {
			p.Message = "This account was signed in on another device at " + at + ", so this session has ended."
		}
		s.renderPage(w, r, p)
	}
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, p page) {
	data := pageData{
		Title:    p.Title,
		Message:  p.Message,
		Link:     p.Link,
		LinkText: p.LinkText,
		AppName:  s.config.GetAppName(),
		Email:    r.Header.Get(HeaderUserEmail),
		Role:     r.Header.Get(HeaderUserRole),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.pageTemplate.Execute(w, data); err != nil {
		log.Err(err).Str("path", r.URL.Path).Msg("failed to render page")
	}
}

// meResponse mirrors the identity headers stamped by the access middleware.
type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// MeHandler returns the identity forwarded for the request.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me := meResponse{
			ID:    r.Header.Get(HeaderUserID),
			Email: r.Header.Get(HeaderUserEmail),
			Role:  r.Header.Get(HeaderUserRole),
		}
		if me.ID == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, me)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// NotFoundHandler handles 404 errors
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "404 - Page not found", http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to write json response")
	}
}
