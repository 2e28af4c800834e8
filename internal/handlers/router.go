package handlers

import (
	"net/http"

	"lexobank/internal/auth"
	"lexobank/internal/config"
	"lexobank/internal/middleware"
	"lexobank/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg          config.Config
	users        UserStore
	transactions TransactionStore
	admin        AdminStore
	pending      PendingStore
	ledger       LedgerService
	chat         websocket.ChatBackend
	hub          *websocket.Hub
}

func New(cfg config.Config, users UserStore, transactions TransactionStore, admin AdminStore, pending PendingStore, ledger LedgerService, chat websocket.ChatBackend, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:          cfg,
		users:        users,
		transactions: transactions,
		admin:        admin,
		pending:      pending,
		ledger:       ledger,
		chat:         chat,
		hub:          hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authUser := middleware.Auth(h.cfg.JWTSecret)
	router.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.With(authUser, middleware.RequireRole(auth.RolePending)).Post("/create-pin", h.CreatePin)
		r.Post("/login", h.Login)
		r.Get("/logout", h.Logout)
		r.With(authUser, middleware.RequireRole(auth.RoleUser)).Get("/user", h.CurrentUser)
		r.With(authUser, middleware.RequireRole(auth.RoleUser)).Get("/history", h.History)
		r.With(authUser, middleware.RequireRole(auth.RoleUser)).Post("/transfer", h.Transfer)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.AdminLogin)
			r.With(authUser, middleware.RequireRole(auth.RoleAdmin)).Get("/users", h.AdminListUsers)
			r.With(authUser, middleware.RequireRole(auth.RoleAdmin)).Post("/lock-user", h.LockUser)
			r.With(authUser, middleware.RequireRole(auth.RoleAdmin)).Post("/send-money", h.SendMoney)
		})
	})
	router.Get("/ws", h.ServeWS)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
