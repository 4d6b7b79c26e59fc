package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator_ValidatePassword(t *testing.T) {
	v := NewPasswordValidator()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ngPass", false},
		{"too short", "S7rong", true},
		{"no digit", "Strongpass", true},
		{"no upper", "str0ngpass", true},
		{"no lower", "STR0NGPASS", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordValidator_ValidateEmail(t *testing.T) {
	v := NewPasswordValidator()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "alice@example.com", false},
		{"no at", "alice.example.com", true},
		{"no local part", "@example.com", true},
		{"no domain", "alice@", true},
		{"bare domain", "alice@localhost", true},
		{"whitespace", "alice @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
