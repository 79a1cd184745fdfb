package http

import (
	"log/slog"
	"net/http"
)

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, loginTemplate, loginPageData{})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Warn("parse login form", "err", err)
		renderPage(w, loginTemplate, loginPageData{Error: true})
		return
	}

	username := r.PostFormValue("username")
	token, ok := h.auth.CheckCredentials(username, r.PostFormValue("password"))
	if !ok {
		slog.Info("login rejected", "username", username)
		renderPage(w, loginTemplate, loginPageData{Error: true, Username: username})
		return
	}

	setAuthCookie(w, token, h.config.CookieSecure)
	slog.Info("login", "username", username)
	redirect(w, r, "/")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w, h.config.CookieSecure)
	redirect(w, r, "/users")
}
