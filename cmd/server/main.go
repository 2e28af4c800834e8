package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"lexobank/internal/auth"
	"lexobank/internal/config"
	"lexobank/internal/handlers"
	"lexobank/internal/models"
	"lexobank/internal/services"
	"lexobank/internal/store"
	"lexobank/internal/websocket"
)

func main() {
	cfg := config.Load()
	if err := store.EnsureDataFiles(cfg.DataDir); err != nil {
		log.Fatalf("failed to prepare data files: %v", err)
	}

	users := store.NewUserStore(filepath.Join(cfg.DataDir, store.UsersFile))
	transactions := store.NewTransactionStore(filepath.Join(cfg.DataDir, store.TransactionsFile))
	chats := store.NewChatStore(filepath.Join(cfg.DataDir, store.ChatsFile))
	admin := store.NewAdminStore(filepath.Join(cfg.DataDir, store.AdminFile))

	adminHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}
	if err := admin.Seed(context.Background(), models.AdminAccount{
		Email:        cfg.AdminEmail,
		PasswordHash: adminHash,
		Name:         cfg.AdminName,
	}); err != nil {
		log.Fatalf("failed to seed admin record: %v", err)
	}

	hub := websocket.NewHub()
	ledger := services.NewLedgerService(users, transactions, hub)
	chat := services.NewChatService(chats, hub)
	pending := services.NewPendingRegistry(cfg.PendingTTL)

	handler := handlers.New(cfg, users, transactions, admin, pending, ledger, chat, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("lexobank API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
