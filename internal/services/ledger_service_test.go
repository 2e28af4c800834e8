package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"lexobank/internal/auth"
	"lexobank/internal/models"
	"lexobank/internal/store"
	"lexobank/internal/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHub struct {
	mu     sync.Mutex
	events []emittedEvent
}

type emittedEvent struct {
	room  string
	event websocket.Event
}

func (h *recordingHub) Emit(room string, event websocket.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, emittedEvent{room: room, event: event})
}

func (h *recordingHub) all() []emittedEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]emittedEvent(nil), h.events...)
}

type ledgerFixture struct {
	service      *LedgerService
	users        *store.UserStore
	transactions *store.TransactionStore
	hub          *recordingHub
	pin          string
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	dir := t.TempDir()
	users := store.NewUserStore(filepath.Join(dir, store.UsersFile))
	transactions := store.NewTransactionStore(filepath.Join(dir, store.TransactionsFile))
	hub := &recordingHub{}
	return &ledgerFixture{
		service:      NewLedgerService(users, transactions, hub),
		users:        users,
		transactions: transactions,
		hub:          hub,
		pin:          "1234",
	}
}

func (f *ledgerFixture) addUser(t *testing.T, id, account string, balance int64, locked bool) {
	t.Helper()
	pinHash, err := auth.HashPassword(f.pin)
	require.NoError(t, err)
	require.NoError(t, f.users.Append(context.Background(), models.User{
		ID:            id,
		Phone:         "080" + id,
		PasswordHash:  "password-hash",
		FullName:      "User " + id,
		AccountNumber: account,
		Balance:       balance,
		PinHash:       &pinHash,
		IsLocked:      locked,
		CreatedAt:     time.Now().UTC(),
		Notifications: []string{},
	}))
}

func (f *ledgerFixture) balance(t *testing.T, id string) int64 {
	t.Helper()
	user, err := f.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return user.Balance
}

func TestTransferToKnownRecipient(t *testing.T) {
	f := newLedgerFixture(t)
	f.addUser(t, "u1", "LEX1000000001", 10000, false)
	f.addUser(t, "u2", "LEX1000000002", 500, false)

	receipt, err := f.service.Transfer(context.Background(), TransferRequest{
		SenderID:         "u1",
		RecipientAccount: "LEX1000000002",
		RecipientName:    "User u2",
		AmountMinor:      2540,
		Pin:              f.pin,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7460), f.balance(t, "u1"))
	assert.Equal(t, int64(3040), f.balance(t, "u2"))
	assert.False(t, receipt.IsExternal)
	assert.Equal(t, "u2", receipt.RecipientID)
	assert.Equal(t, models.TransactionTypeTransfer, receipt.Type)
	assert.Equal(t, models.TransactionStatusCompleted, receipt.Status)
	assert.Equal(t, "Lexo Bank", receipt.BankName)
	assert.NotEmpty(t, receipt.ReceiptID)

	log, err := f.transactions.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, receipt, log[0])

	events := f.hub.all()
	require.Len(t, events, 1)
	assert.Equal(t, "u2", events[0].room)
	assert.Equal(t, websocket.EventNotification, events[0].event.Event)
	notification, ok := events[0].event.Data.(websocket.Notification)
	require.True(t, ok)
	assert.Equal(t, "25.40", notification.Amount)
	assert.Contains(t, notification.Message, "User u1")
}

func TestTransferToUnknownAccountIsExternal(t *testing.T) {
	f := newLedgerFixture(t)
	f.addUser(t, "u1", "LEX1000000001", 10000, false)

	receipt, err := f.service.Transfer(context.Background(), TransferRequest{
		SenderID:         "u1",
		BankName:         "Other Bank",
		RecipientAccount: "0001112223",
		RecipientName:    "Stranger",
		AmountMinor:      1000,
		Pin:              f.pin,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(9000), f.balance(t, "u1"))
	assert.True(t, receipt.IsExternal)
	assert.Equal(t, models.ExternalRecipientID, receipt.RecipientID)
	assert.Equal(t, "Other Bank", receipt.BankName)
	assert.Empty(t, f.hub.all(), "external transfers notify nobody")
}

func TestTransferInvalidPin(t *testing.T) {
	f := newLedgerFixture(t)
	f.addUser(t, "u1", "LEX1000000001", 10000, false)
	f.addUser(t, "u2", "LEX1000000002", 0, false)

	_, err := f.service.Transfer(context.Background(), TransferRequest{
		SenderID:         "u1",
		RecipientAccount: "LEX1000000002",
		AmountMinor:      100,
		Pin:              "9999",
	})
	assert.ErrorIs(t, err, ErrInvalidPin)

	assert.Equal(t, int64(10000), f.balance(t, "u1"))
	assert.Equal(t, int64(0), f.balance(t, "u2"))
	log, err := f.transactions.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, log, "no transaction recorded on failure")
}

func TestTransferInsufficientFunds(t *testing.T) {
	f := newLedgerFixture(t)
	f.addUser(t, "u1", "LEX1000000001", 50, false)
	f.addUser(t, "u2", "LEX1000000002", 0, false)

	_, err := f.service.Transfer(context.Background(), TransferRequest{
		SenderID:         "u1",
		RecipientAccount: "LEX1000000002",
		AmountMinor:      100,
		Pin:              f.pin,
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(50), f.balance(t, "u1"))
}

func TestTransferLockedSender(t *testing.T) {
	f := newLedgerFixture(t)
	f.addUser(t, "u1", "LEX1000000001", 10000, true)

	_, err := f.service.Transfer(context.Background(), TransferRequest{
		SenderID:         "u1",
		RecipientAccount: "0001112223",
		AmountMinor:      100,
		Pin:              f.pin,
	})
	assert.ErrorIs(t, err, ErrAccountLocked)
	assert.Equal(t, int64(10000), f.balance(t, "u1"))
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.service.Transfer(context.Background(), TransferRequest{
		SenderID:    "u1",
		AmountMinor: 0,
		Pin:         f.pin,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestConcurrentTransfersCannotOverdraw(t *testing.T) {
	f := newLedgerFixture(t)
	f.addUser(t, "u1", "LEX1000000001", 100, false)
	f.addUser(t, "u2", "LEX1000000002", 0, false)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Transfer(context.Background(), TransferRequest{
				SenderID:         "u1",
				RecipientAccount: "LEX1000000002",
				AmountMinor:      100,
				Pin:              f.pin,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one transfer may pass the balance check")
	assert.Equal(t, int64(0), f.balance(t, "u1"))
	assert.Equal(t, int64(100), f.balance(t, "u2"))
}

func TestAdminCredit(t *testing.T) {
	f := newLedgerFixture(t)
	f.addUser(t, "u1", "LEX1000000001", 500, false)

	transaction, err := f.service.AdminCredit(context.Background(), "u1", 2500, "Support")
	require.NoError(t, err)

	assert.Equal(t, int64(3000), f.balance(t, "u1"))
	assert.Equal(t, models.AdminSenderID, transaction.SenderID)
	assert.Equal(t, models.AdminSenderAccount, transaction.SenderAccount)
	assert.Equal(t, models.TransactionTypeCredit, transaction.Type)
	assert.Equal(t, "Support", transaction.SenderName)

	log, err := f.transactions.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, log, 1)

	events := f.hub.all()
	require.Len(t, events, 1)
	assert.Equal(t, "u1", events[0].room)
}

func TestAdminCreditUnknownUser(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.service.AdminCredit(context.Background(), "missing", 100, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
