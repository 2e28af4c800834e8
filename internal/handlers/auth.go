package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"lexobank/internal/auth"
	"lexobank/internal/middleware"
	"lexobank/internal/models"
	"lexobank/internal/services"
	"lexobank/internal/store"
	"lexobank/internal/validator"

	"github.com/google/uuid"
)

type registerRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Register checks phone uniqueness and parks a provisional user record in the
// pending registry. Nothing is persisted until the PIN step completes; the
// returned token authorizes only /api/create-pin.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidatePhone(req.Phone); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateFullName(req.FullName); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	_, err := h.users.GetByPhone(r.Context(), req.Phone)
	if err == nil {
		respondError(w, http.StatusConflict, services.ErrDuplicatePhone.Error())
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure password")
		return
	}
	accountNumber, err := h.generateAccountNumber(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	user := models.User{
		ID:            uuid.NewString(),
		Phone:         req.Phone,
		PasswordHash:  passwordHash,
		FullName:      req.FullName,
		AccountNumber: accountNumber,
		Balance:       0,
		PinHash:       nil,
		IsLocked:      false,
		CreatedAt:     time.Now().UTC(),
		Notifications: []string{},
	}
	pendingID := uuid.NewString()
	h.pending.Put(pendingID, user)
	token, err := auth.GenerateToken(h.cfg.JWTSecret, pendingID, auth.RolePending, h.cfg.PendingTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"message":           "Proceed to create PIN",
		"registrationToken": token,
	})
}

type createPinRequest struct {
	Pin string `json:"pin"`
}

// CreatePin finalizes a pending registration: the PIN is hashed, the user is
// appended to the store and a regular user token is issued.
func (h *Handler) CreatePin(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidatePin(req.Pin); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.pending.Take(claims.UserID)
	if err != nil {
		if err == services.ErrSessionExpired {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, services.ErrNoPendingRegistration.Error())
		return
	}
	pinHash, err := auth.HashPassword(req.Pin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure PIN")
		return
	}
	user.PinHash = &pinHash
	if err := h.users.Append(r.Context(), user); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.ID, auth.RoleUser, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Account created successfully",
		"token":   token,
		"user":    userPayload(user),
	})
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := h.users.GetByPhone(r.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
		return
	}
	if user.IsLocked {
		respondError(w, http.StatusForbidden, "Account is locked. Contact support.")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.ID, auth.RoleUser, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(user),
	})
}

// Logout exists for API parity; tokens are stateless so there is no session
// to destroy server-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// generateAccountNumber produces LEX + 10 digits and re-rolls while the
// number is already taken.
func (h *Handler) generateAccountNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		number := fmt.Sprintf("LEX%d", 1000000000+rand.Int63n(9000000000))
		_, err := h.users.GetByAccountNumber(ctx, number)
		if errors.Is(err, store.ErrNotFound) {
			return number, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("unable to allocate account number")
}
