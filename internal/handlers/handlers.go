package handlers

import (
	"encoding/json"
	"net/http"

	"lexobank/internal/models"
	"lexobank/internal/money"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// userPayload is the API projection of a user record. Password and PIN
// hashes never leave the server.
func userPayload(user models.User) map[string]any {
	return map[string]any{
		"id":            user.ID,
		"phone":         user.Phone,
		"fullName":      user.FullName,
		"accountNumber": user.AccountNumber,
		"balance":       money.FormatMinor(user.Balance),
		"isLocked":      user.IsLocked,
		"createdAt":     user.CreatedAt,
	}
}

func transactionPayload(transaction models.Transaction) map[string]any {
	payload := map[string]any{
		"id":               transaction.ID,
		"senderId":         transaction.SenderID,
		"senderName":       transaction.SenderName,
		"senderAccount":    transaction.SenderAccount,
		"recipientId":      transaction.RecipientID,
		"recipientName":    transaction.RecipientName,
		"recipientAccount": transaction.RecipientAccount,
		"bankName":         transaction.BankName,
		"amount":           money.FormatMinor(transaction.Amount),
		"type":             transaction.Type,
		"status":           transaction.Status,
		"date":             transaction.Date,
		"isExternal":       transaction.IsExternal,
	}
	if transaction.ReceiptID != "" {
		payload["receiptId"] = transaction.ReceiptID
	}
	return payload
}

func transactionPayloads(transactions []models.Transaction) []map[string]any {
	payloads := make([]map[string]any, 0, len(transactions))
	for _, transaction := range transactions {
		payloads = append(payloads, transactionPayload(transaction))
	}
	return payloads
}
