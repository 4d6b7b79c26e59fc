package credential

import (
	"fmt"
	"strings"
)

// APIKeySecret holds an API key. On input only the key itself may be
// entered; at save time the key moves into the password field and the
// credential name becomes the username label, so the key is never lost
// in the generic username slot.
type APIKeySecret struct {
	Key      string `json:"key"`
	Secret   string `json:"secret,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

func (s *APIKeySecret) Type() ServiceType {
	return TypeAPI
}

func (s *APIKeySecret) Validate() error {
	if strings.TrimSpace(s.Key) == "" && strings.TrimSpace(s.Secret) == "" {
		return fmt.Errorf("%w: required fields missing: key", ErrValidation)
	}
	return nil
}

func (s *APIKeySecret) Flatten(credName string) (FieldSet, error) {
	if err := s.Validate(); err != nil {
		return FieldSet{}, err
	}
	username := s.Key
	password := s.Secret
	if password == "" && s.Key != "" {
		password = s.Key
		username = credName
	}
	return FieldSet{
		Username: username,
		Password: password,
		URL:      s.Endpoint,
	}, nil
}
