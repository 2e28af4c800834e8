package handlers

import (
	"net/http"
	"strings"

	"lexobank/internal/auth"
	"lexobank/internal/websocket"
)

// ServeWS authenticates the socket from a query-string token (or Bearer
// header) and hands the connection to the hub. The connection starts out
// subscribed to the caller's own room.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, h.chat, claims.UserID)
}
