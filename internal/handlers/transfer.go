package handlers

import (
	"encoding/json"
	"net/http"

	"lexobank/internal/middleware"
	"lexobank/internal/services"
)

type transferRequest struct {
	BankName         string `json:"bankName"`
	RecipientAccount string `json:"recipientAccount"`
	RecipientName    string `json:"recipientName"`
	Amount           string `json:"amount"`
	Pin              string `json:"pin"`
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.RecipientAccount == "" {
		respondError(w, http.StatusBadRequest, "recipientAccount is required")
		return
	}
	amountMinor, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, services.ErrInvalidAmount.Error())
		return
	}
	receipt, err := h.ledger.Transfer(r.Context(), services.TransferRequest{
		SenderID:         userID,
		BankName:         req.BankName,
		RecipientAccount: req.RecipientAccount,
		RecipientName:    req.RecipientName,
		AmountMinor:      amountMinor,
		Pin:              req.Pin,
	})
	if err != nil {
		switch err {
		case services.ErrAccountLocked:
			respondError(w, http.StatusForbidden, "Your account is locked. Cannot make transfers.")
		case services.ErrInvalidPin:
			respondError(w, http.StatusForbidden, "Invalid PIN")
		case services.ErrInsufficientFunds:
			respondError(w, http.StatusBadRequest, "Insufficient balance")
		case services.ErrInvalidAmount:
			respondError(w, http.StatusBadRequest, err.Error())
		case services.ErrUserNotFound:
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "transfer failed")
		}
		return
	}
	message := "Transfer successful"
	if receipt.IsExternal {
		message = "Transfer to external bank successful"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"receipt": transactionPayload(receipt),
	})
}
