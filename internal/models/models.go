package models

import "time"

type User struct {
	ID            string    `json:"id"`
	Phone         string    `json:"phone"`
	PasswordHash  string    `json:"password"`
	FullName      string    `json:"fullName"`
	AccountNumber string    `json:"accountNumber"`
	Balance       int64     `json:"balance"`
	PinHash       *string   `json:"pin"`
	IsLocked      bool      `json:"isLocked"`
	CreatedAt     time.Time `json:"createdAt"`
	Notifications []string  `json:"notifications"`
}

type Transaction struct {
	ID               string    `json:"id"`
	SenderID         string    `json:"senderId"`
	SenderName       string    `json:"senderName"`
	SenderAccount    string    `json:"senderAccount"`
	RecipientID      string    `json:"recipientId"`
	RecipientName    string    `json:"recipientName"`
	RecipientAccount string    `json:"recipientAccount"`
	BankName         string    `json:"bankName"`
	Amount           int64     `json:"amount"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	Date             time.Time `json:"date"`
	ReceiptID        string    `json:"receiptId,omitempty"`
	IsExternal       bool      `json:"isExternal"`
}

type ChatMessage struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Message     string    `json:"message"`
	SenderType  string    `json:"senderType"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}

type AdminAccount struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	Name         string `json:"name"`
}

const (
	TransactionTypeTransfer = "transfer"
	TransactionTypeCredit   = "credit"

	TransactionStatusCompleted = "completed"

	// RecipientID recorded when a transfer leaves the system.
	ExternalRecipientID = "external"

	AdminSenderID      = "admin"
	AdminSenderAccount = "ADMIN"
)
