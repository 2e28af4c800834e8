package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidPin      = errors.New("invalid PIN format")
	ErrInvalidName     = errors.New("invalid full name")
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	pinRegex   = regexp.MustCompile(`^[0-9]{4,6}$`)
)

func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidatePin(pin string) error {
	if !pinRegex.MatchString(pin) {
		return ErrInvalidPin
	}
	return nil
}

func ValidateFullName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 || len(trimmed) > 80 {
		return ErrInvalidName
	}
	return nil
}
