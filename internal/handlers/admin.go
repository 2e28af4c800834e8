package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lexobank/internal/auth"
	"lexobank/internal/models"
	"lexobank/internal/services"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	admin, err := h.admin.Get(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "admin login failed")
		return
	}
	if req.Email != admin.Email || !auth.CheckPassword(admin.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid admin credentials")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, models.AdminSenderID, auth.RoleAdmin, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"name":    admin.Name,
	})
}

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load users")
		return
	}
	payloads := make([]map[string]any, 0, len(users))
	for _, user := range users {
		payloads = append(payloads, userPayload(user))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   payloads,
	})
}

type lockUserRequest struct {
	UserID string `json:"userId"`
	Lock   bool   `json:"lock"`
}

// LockUser toggles the lock flag. No transaction record is generated.
func (h *Handler) LockUser(w http.ResponseWriter, r *http.Request) {
	var req lockUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	err := h.users.Mutate(r.Context(), func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == req.UserID {
				users[i].IsLocked = req.Lock
				return users, nil
			}
		}
		return nil, services.ErrUserNotFound
	})
	if err != nil {
		if err == services.ErrUserNotFound {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to update user")
		return
	}
	action := "unlocked"
	if req.Lock {
		action = "locked"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("User %s successfully", action),
	})
}

type sendMoneyRequest struct {
	UserID     string `json:"userId"`
	Amount     string `json:"amount"`
	SenderName string `json:"senderName"`
}

func (h *Handler) SendMoney(w http.ResponseWriter, r *http.Request) {
	var req sendMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amountMinor, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, services.ErrInvalidAmount.Error())
		return
	}
	if _, err := h.ledger.AdminCredit(r.Context(), req.UserID, amountMinor, req.SenderName); err != nil {
		switch err {
		case services.ErrUserNotFound:
			respondError(w, http.StatusNotFound, err.Error())
		case services.ErrInvalidAmount:
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "unable to send money")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Money sent successfully",
	})
}
