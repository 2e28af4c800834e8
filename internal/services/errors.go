package services

import "errors"

var (
	ErrDuplicatePhone        = errors.New("phone number already registered")
	ErrNoPendingRegistration = errors.New("no pending registration")
	ErrSessionExpired        = errors.New("session expired")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountLocked         = errors.New("account is locked")
	ErrInvalidPin            = errors.New("invalid PIN")
	ErrInsufficientFunds     = errors.New("insufficient balance")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrUserNotFound          = errors.New("user not found")
)
