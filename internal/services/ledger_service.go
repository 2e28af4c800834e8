package services

import (
	"context"
	"fmt"
	"time"

	"lexobank/internal/auth"
	"lexobank/internal/models"
	"lexobank/internal/money"
	"lexobank/internal/websocket"

	"github.com/google/uuid"
)

const defaultBankName = "Lexo Bank"

type UserMutator interface {
	Mutate(ctx context.Context, fn func(users []models.User) ([]models.User, error)) error
}

type TransactionAppender interface {
	Append(ctx context.Context, transaction models.Transaction) error
}

type NotificationHub interface {
	Emit(room string, event websocket.Event)
}

// LedgerService owns every balance mutation. Both user balances, the
// transaction record and the notification for a transfer are produced here;
// the check-debit-credit block runs inside the user store's write lock so
// concurrent transfers from one sender serialize.
type LedgerService struct {
	users        UserMutator
	transactions TransactionAppender
	hub          NotificationHub
}

func NewLedgerService(users UserMutator, transactions TransactionAppender, hub NotificationHub) *LedgerService {
	return &LedgerService{
		users:        users,
		transactions: transactions,
		hub:          hub,
	}
}

type TransferRequest struct {
	SenderID         string
	BankName         string
	RecipientAccount string
	RecipientName    string
	AmountMinor      int64
	Pin              string
}

// Transfer debits the sender and, when the destination account number belongs
// to a known user, credits the recipient. An unknown account number marks the
// transaction external: the funds leave the system and nobody is credited.
// The receipt is the appended transaction.
func (s *LedgerService) Transfer(ctx context.Context, req TransferRequest) (models.Transaction, error) {
	if req.AmountMinor <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}
	var (
		transaction models.Transaction
		recipientID string
		senderName  string
		credited    bool
	)
	err := s.users.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		senderIdx := -1
		for i := range users {
			if users[i].ID == req.SenderID {
				senderIdx = i
				break
			}
		}
		if senderIdx < 0 {
			return nil, ErrUserNotFound
		}
		sender := &users[senderIdx]
		if sender.IsLocked {
			return nil, ErrAccountLocked
		}
		if sender.PinHash == nil || !auth.CheckPassword(*sender.PinHash, req.Pin) {
			return nil, ErrInvalidPin
		}
		if sender.Balance < req.AmountMinor {
			return nil, ErrInsufficientFunds
		}
		sender.Balance -= req.AmountMinor

		recipientIdx := -1
		for i := range users {
			if users[i].AccountNumber == req.RecipientAccount {
				recipientIdx = i
				break
			}
		}
		bankName := req.BankName
		if bankName == "" {
			bankName = defaultBankName
		}
		now := time.Now().UTC()
		senderName = sender.FullName
		transaction = models.Transaction{
			ID:               uuid.NewString(),
			SenderID:         sender.ID,
			SenderName:       sender.FullName,
			SenderAccount:    sender.AccountNumber,
			RecipientAccount: req.RecipientAccount,
			RecipientName:    req.RecipientName,
			BankName:         bankName,
			Amount:           req.AmountMinor,
			Type:             models.TransactionTypeTransfer,
			Status:           models.TransactionStatusCompleted,
			Date:             now,
			ReceiptID:        fmt.Sprintf("RCP%d", now.UnixMilli()),
		}
		if recipientIdx >= 0 {
			users[recipientIdx].Balance += req.AmountMinor
			transaction.RecipientID = users[recipientIdx].ID
			recipientID = users[recipientIdx].ID
			credited = true
		} else {
			transaction.RecipientID = models.ExternalRecipientID
			transaction.IsExternal = true
		}
		return users, nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	// No rollback of the balance change if this append fails; the failure
	// propagates to the caller instead.
	if err := s.transactions.Append(ctx, transaction); err != nil {
		return models.Transaction{}, err
	}
	if credited {
		s.hub.Emit(recipientID, websocket.Event{
			Event: websocket.EventNotification,
			Data: websocket.Notification{
				UserID:  recipientID,
				Message: fmt.Sprintf("Received $%s from %s", money.FormatMinor(req.AmountMinor), senderName),
				Type:    models.TransactionTypeCredit,
				Amount:  money.FormatMinor(req.AmountMinor),
			},
		})
	}
	return transaction, nil
}

// AdminCredit unconditionally credits a user on behalf of the admin console
// and records a credit-type transaction with the admin as sender.
func (s *LedgerService) AdminCredit(ctx context.Context, userID string, amountMinor int64, senderName string) (models.Transaction, error) {
	if amountMinor <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}
	if senderName == "" {
		senderName = "Admin"
	}
	var transaction models.Transaction
	err := s.users.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		idx := -1
		for i := range users {
			if users[i].ID == userID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrUserNotFound
		}
		users[idx].Balance += amountMinor
		transaction = models.Transaction{
			ID:               uuid.NewString(),
			SenderID:         models.AdminSenderID,
			SenderName:       senderName,
			SenderAccount:    models.AdminSenderAccount,
			RecipientID:      users[idx].ID,
			RecipientName:    users[idx].FullName,
			RecipientAccount: users[idx].AccountNumber,
			BankName:         defaultBankName,
			Amount:           amountMinor,
			Type:             models.TransactionTypeCredit,
			Status:           models.TransactionStatusCompleted,
			Date:             time.Now().UTC(),
		}
		return users, nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	if err := s.transactions.Append(ctx, transaction); err != nil {
		return models.Transaction{}, err
	}
	s.hub.Emit(userID, websocket.Event{
		Event: websocket.EventNotification,
		Data: websocket.Notification{
			UserID:  userID,
			Message: fmt.Sprintf("Received $%s from %s", money.FormatMinor(amountMinor), senderName),
			Type:    models.TransactionTypeCredit,
			Amount:  money.FormatMinor(amountMinor),
		},
	})
	return transaction, nil
}
