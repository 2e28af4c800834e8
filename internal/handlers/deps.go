package handlers

import (
	"context"

	"lexobank/internal/models"
	"lexobank/internal/services"
)

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
	GetByPhone(ctx context.Context, phone string) (models.User, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (models.User, error)
	Append(ctx context.Context, user models.User) error
	Mutate(ctx context.Context, fn func(users []models.User) ([]models.User, error)) error
}

type TransactionStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)
}

type AdminStore interface {
	Get(ctx context.Context) (models.AdminAccount, error)
}

type PendingStore interface {
	Put(id string, user models.User)
	Take(id string) (models.User, error)
}

type LedgerService interface {
	Transfer(ctx context.Context, req services.TransferRequest) (models.Transaction, error)
	AdminCredit(ctx context.Context, userID string, amountMinor int64, senderName string) (models.Transaction, error)
}
