package credential

// OtherSecret is the free-form variant: literal username/password plus an
// optional URL, for anything the other types don't cover.
type OtherSecret struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Endpoint string `json:"endpoint,omitempty"`
}

func (s *OtherSecret) Type() ServiceType {
	return TypeOther
}

func (s *OtherSecret) Validate() error {
	return validateUserPass(s.Username, s.Password)
}

func (s *OtherSecret) Flatten(_ string) (FieldSet, error) {
	if err := s.Validate(); err != nil {
		return FieldSet{}, err
	}
	return FieldSet{Username: s.Username, Password: s.Password, URL: s.Endpoint}, nil
}
