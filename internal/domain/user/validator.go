package user

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	MinNameLen     = 1
	MaxNameLen     = 64
	MinPasswordLen = 8
)

// Validator checks registration input before it reaches storage.
type Validator interface {
	ValidateRegister(name, email, password string) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type PasswordValidator struct {
	requireDigit bool
	requireUpper bool
	requireLower bool
}

func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		requireDigit: true,
		requireUpper: true,
		requireLower: true,
	}
}

func (v *PasswordValidator) ValidateRegister(name, email, password string) error {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLen || len(name) > MaxNameLen {
		return fmt.Errorf("name must be between %d and %d characters", MinNameLen, MaxNameLen)
	}

	if err := v.ValidateEmail(email); err != nil {
		return fmt.Errorf("email validation failed: %w", err)
	}

	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

func (v *PasswordValidator) ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return fmt.Errorf("email must contain a local part and a domain")
	}
	if strings.ContainsAny(email, " \t") {
		return fmt.Errorf("email must not contain whitespace")
	}
	if !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("email domain looks incomplete")
	}
	return nil
}

func (v *PasswordValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	hasLower := false
	hasUpper := false
	hasDigit := false

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}

		if hasLower && hasUpper && hasDigit {
			break
		}
	}

	if v.requireLower && !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if v.requireUpper && !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if v.requireDigit && !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	return nil
}
