package credential

import "fmt"

// FieldSet is the flat physical representation persisted for a credential.
type FieldSet struct {
	Username string
	Password string
	URL      string
}

// Secret is one typed variant of a credential's secret material. Variants
// carry named fields; the flat username/password overloading exists only
// at the persistence boundary, produced by Flatten and undone by the
// Factory's Parse.
type Secret interface {
	Type() ServiceType
	Validate() error
	// Flatten maps the variant onto the physical fields. credName is the
	// credential's display name; the api variant uses it as a readable
	// username label when the entered key moves into the password field.
	Flatten(credName string) (FieldSet, error)
}

// Factory builds secret variants by service type.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// New returns an empty variant for the given type.
func (f *Factory) New(typ ServiceType) (Secret, error) {
	switch typ {
	case TypeDatabase:
		return &DatabaseSecret{}, nil
	case TypeAPI:
		return &APIKeySecret{}, nil
	case TypeCloud:
		return &CloudSecret{}, nil
	case TypeOther:
		return &OtherSecret{}, nil
	case TypeEnv:
		return &EnvBundleSecret{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, typ)
	}
}

// Parse reconstructs a variant from the flat physical fields, for editing
// an existing credential or for a flat create request.
func (f *Factory) Parse(typ ServiceType, fields FieldSet) (Secret, error) {
	switch typ {
	case TypeDatabase:
		return &DatabaseSecret{
			Key:      fields.Username,
			Secret:   fields.Password,
			Endpoint: fields.URL,
		}, nil
	case TypeAPI:
		return &APIKeySecret{
			Key:      fields.Username,
			Secret:   fields.Password,
			Endpoint: fields.URL,
		}, nil
	case TypeCloud:
		return &CloudSecret{
			Username: fields.Username,
			Password: fields.Password,
			Endpoint: fields.URL,
		}, nil
	case TypeOther:
		return &OtherSecret{
			Username: fields.Username,
			Password: fields.Password,
			Endpoint: fields.URL,
		}, nil
	case TypeEnv:
		return &EnvBundleSecret{
			Vars:     DecodeEnvVars(fields.Password),
			Endpoint: fields.URL,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, typ)
	}
}
