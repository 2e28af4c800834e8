package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexobank/internal/auth"
	"lexobank/internal/config"
	"lexobank/internal/middleware"
	"lexobank/internal/models"
	"lexobank/internal/services"
	"lexobank/internal/store"
	"lexobank/internal/websocket"
)

type stubUserStore struct {
	listFn         func(ctx context.Context) ([]models.User, error)
	getByIDFn      func(ctx context.Context, userID string) (models.User, error)
	getByPhoneFn   func(ctx context.Context, phone string) (models.User, error)
	getByAccountFn func(ctx context.Context, accountNumber string) (models.User, error)
	appendFn       func(ctx context.Context, user models.User) error
	mutateFn       func(ctx context.Context, fn func(users []models.User) ([]models.User, error)) error
}

func (s stubUserStore) List(ctx context.Context) ([]models.User, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{}, store.ErrNotFound
	}
	return s.getByIDFn(ctx, userID)
}

func (s stubUserStore) GetByPhone(ctx context.Context, phone string) (models.User, error) {
	if s.getByPhoneFn == nil {
		return models.User{}, store.ErrNotFound
	}
	return s.getByPhoneFn(ctx, phone)
}

func (s stubUserStore) GetByAccountNumber(ctx context.Context, accountNumber string) (models.User, error) {
	if s.getByAccountFn == nil {
		return models.User{}, store.ErrNotFound
	}
	return s.getByAccountFn(ctx, accountNumber)
}

func (s stubUserStore) Append(ctx context.Context, user models.User) error {
	if s.appendFn == nil {
		return nil
	}
	return s.appendFn(ctx, user)
}

func (s stubUserStore) Mutate(ctx context.Context, fn func(users []models.User) ([]models.User, error)) error {
	if s.mutateFn == nil {
		return nil
	}
	return s.mutateFn(ctx, fn)
}

type stubTransactionStore struct {
	listByUserFn func(ctx context.Context, userID string) ([]models.Transaction, error)
}

func (s stubTransactionStore) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID)
}

type stubAdminStore struct {
	getFn func(ctx context.Context) (models.AdminAccount, error)
}

func (s stubAdminStore) Get(ctx context.Context) (models.AdminAccount, error) {
	if s.getFn == nil {
		return models.AdminAccount{}, store.ErrNotFound
	}
	return s.getFn(ctx)
}

type stubPendingStore struct {
	putFn  func(id string, user models.User)
	takeFn func(id string) (models.User, error)
}

func (s stubPendingStore) Put(id string, user models.User) {
	if s.putFn != nil {
		s.putFn(id, user)
	}
}

func (s stubPendingStore) Take(id string) (models.User, error) {
	if s.takeFn == nil {
		return models.User{}, services.ErrNoPendingRegistration
	}
	return s.takeFn(id)
}

type stubLedgerService struct {
	transferFn    func(ctx context.Context, req services.TransferRequest) (models.Transaction, error)
	adminCreditFn func(ctx context.Context, userID string, amountMinor int64, senderName string) (models.Transaction, error)
}

func (s stubLedgerService) Transfer(ctx context.Context, req services.TransferRequest) (models.Transaction, error) {
	if s.transferFn == nil {
		return models.Transaction{}, nil
	}
	return s.transferFn(ctx, req)
}

func (s stubLedgerService) AdminCredit(ctx context.Context, userID string, amountMinor int64, senderName string) (models.Transaction, error) {
	if s.adminCreditFn == nil {
		return models.Transaction{}, nil
	}
	return s.adminCreditFn(ctx, userID, amountMinor, senderName)
}

type nopChatBackend struct{}

func (nopChatBackend) Send(ctx context.Context, senderID, recipientID, message, senderType string) (models.ChatMessage, error) {
	return models.ChatMessage{}, nil
}

func (nopChatBackend) History(ctx context.Context, userID, chatWith string) ([]models.ChatMessage, error) {
	return nil, nil
}

func newTestHandler(users UserStore, transactions TransactionStore, admin AdminStore, pending PendingStore, ledger LedgerService) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		PendingTTL:     time.Minute,
		AllowedOrigins: "*",
	}
	return New(cfg, users, transactions, admin, pending, ledger, nopChatBackend{}, websocket.NewHub())
}

// serveWithAuth runs a handler behind the auth middleware with a token for
// the given subject and role, mirroring how the router wires routes.
func serveWithAuth(t *testing.T, handler http.HandlerFunc, subject, role, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken("secret", subject, role, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	middleware.Auth("secret")(middleware.RequireRole(role)(handler)).ServeHTTP(rr, req)
	return rr
}
