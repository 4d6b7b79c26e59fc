package credential

import (
	"fmt"
	"strings"
)

// DatabaseSecret holds a database connection identity: a connection
// key/identifier, its secret and an optional endpoint URI.
type DatabaseSecret struct {
	Key      string `json:"key"`
	Secret   string `json:"secret"`
	Endpoint string `json:"endpoint,omitempty"`
}

func (s *DatabaseSecret) Type() ServiceType {
	return TypeDatabase
}

func (s *DatabaseSecret) Validate() error {
	var missing []string
	if strings.TrimSpace(s.Key) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(s.Secret) == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: required fields missing: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func (s *DatabaseSecret) Flatten(_ string) (FieldSet, error) {
	if err := s.Validate(); err != nil {
		return FieldSet{}, err
	}
	return FieldSet{
		Username: s.Key,
		Password: s.Secret,
		URL:      s.Endpoint,
	}, nil
}
