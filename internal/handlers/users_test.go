package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"lexobank/internal/auth"
	"lexobank/internal/models"
)

func TestCurrentUserRefetchesRecord(t *testing.T) {
	handler := newTestHandler(stubUserStore{
		getByIDFn: func(_ context.Context, userID string) (models.User, error) {
			return models.User{
				ID:            userID,
				Phone:         "08031234567",
				FullName:      "Ada Obi",
				AccountNumber: "LEX1000000001",
				Balance:       123456,
				CreatedAt:     time.Now().UTC(),
			}, nil
		},
	}, stubTransactionStore{}, stubAdminStore{}, stubPendingStore{}, stubLedgerService{})

	rr := serveWithAuth(t, handler.CurrentUser, "u1", auth.RoleUser, http.MethodGet, "/api/user", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload struct {
		Success bool           `json:"success"`
		User    map[string]any `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.User["balance"] != "1234.56" {
		t.Fatalf("expected current on-disk balance, got %v", payload.User["balance"])
	}
}

func TestCurrentUserMissing(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubTransactionStore{}, stubAdminStore{}, stubPendingStore{}, stubLedgerService{})
	rr := serveWithAuth(t, handler.CurrentUser, "ghost", auth.RoleUser, http.MethodGet, "/api/user", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestHistory(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubTransactionStore{
		listByUserFn: func(_ context.Context, userID string) ([]models.Transaction, error) {
			return []models.Transaction{
				{ID: "t1", SenderID: userID, Amount: 100, Type: models.TransactionTypeTransfer},
				{ID: "t2", RecipientID: userID, Amount: 2500, Type: models.TransactionTypeCredit},
			}, nil
		},
	}, stubAdminStore{}, stubPendingStore{}, stubLedgerService{})

	rr := serveWithAuth(t, handler.History, "u1", auth.RoleUser, http.MethodGet, "/api/history", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload struct {
		Success bool             `json:"success"`
		History []map[string]any `json:"history"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.History) != 2 {
		t.Fatalf("expected 2 records, got %d", len(payload.History))
	}
	if payload.History[1]["amount"] != "25.00" {
		t.Fatalf("unexpected amount: %v", payload.History[1]["amount"])
	}
}
