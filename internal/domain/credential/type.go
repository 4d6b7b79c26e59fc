package credential

// ServiceType is the discriminator controlling which logical secret
// components the physical username/password/url fields hold.
type ServiceType string

const (
	TypeDatabase ServiceType = "database"
	TypeAPI      ServiceType = "api"
	TypeCloud    ServiceType = "cloud"
	TypeEnv      ServiceType = "env"
	TypeOther    ServiceType = "other"
)

func (t ServiceType) String() string {
	return string(t)
}

func (t ServiceType) Valid() bool {
	switch t {
	case TypeDatabase, TypeAPI, TypeCloud, TypeEnv, TypeOther:
		return true
	}
	return false
}

// Environment a credential belongs to.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

func (e Environment) Valid() bool {
	switch e {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	}
	return false
}
