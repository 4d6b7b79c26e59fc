package credential

import (
	"fmt"
	"strings"
)

// CloudSecret holds a cloud console login: literal username, password and
// optional console endpoint.
type CloudSecret struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Endpoint string `json:"endpoint,omitempty"`
}

func (s *CloudSecret) Type() ServiceType {
	return TypeCloud
}

func (s *CloudSecret) Validate() error {
	return validateUserPass(s.Username, s.Password)
}

func (s *CloudSecret) Flatten(_ string) (FieldSet, error) {
	if err := s.Validate(); err != nil {
		return FieldSet{}, err
	}
	return FieldSet{Username: s.Username, Password: s.Password, URL: s.Endpoint}, nil
}

func validateUserPass(username, password string) error {
	var missing []string
	if strings.TrimSpace(username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(password) == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: required fields missing: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
