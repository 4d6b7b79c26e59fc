package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactory_New(t *testing.T) {
	factory := NewFactory()

	for _, typ := range []ServiceType{TypeDatabase, TypeAPI, TypeCloud, TypeEnv, TypeOther} {
		sec, err := factory.New(typ)
		assert.NoError(t, err)
		assert.Equal(t, typ, sec.Type())
	}

	_, err := factory.New("ssh")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestDatabaseSecret_Flatten(t *testing.T) {
	tests := []struct {
		name    string
		secret  DatabaseSecret
		want    FieldSet
		wantErr string
	}{
		{
			name:   "literal mapping",
			secret: DatabaseSecret{Key: "dbadmin", Secret: "hunter2", Endpoint: "db:5432"},
			want:   FieldSet{Username: "dbadmin", Password: "hunter2", URL: "db:5432"},
		},
		{
			name:    "missing password",
			secret:  DatabaseSecret{Key: "dbadmin"},
			wantErr: "password",
		},
		{
			name:    "missing both",
			secret:  DatabaseSecret{},
			wantErr: "username, password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.secret.Flatten("Prod Postgres")
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrValidation)
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIKeySecret_Flatten(t *testing.T) {
	tests := []struct {
		name   string
		secret APIKeySecret
		want   FieldSet
	}{
		{
			// key alone: key becomes the password, the credential name
			// labels the username slot
			name:   "key only is repurposed",
			secret: APIKeySecret{Key: "AKIA123"},
			want:   FieldSet{Username: "Stripe", Password: "AKIA123"},
		},
		{
			name:   "key and secret stay literal",
			secret: APIKeySecret{Key: "AKIA123", Secret: "s3cret"},
			want:   FieldSet{Username: "AKIA123", Password: "s3cret"},
		},
		{
			name:   "secret only stays literal",
			secret: APIKeySecret{Secret: "s3cret"},
			want:   FieldSet{Password: "s3cret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.secret.Flatten("Stripe")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("both blank fails", func(t *testing.T) {
		s := APIKeySecret{}
		_, err := s.Flatten("Stripe")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestFactory_Parse_EnvDecodesBundle(t *testing.T) {
	factory := NewFactory()

	sec, err := factory.Parse(TypeEnv, FieldSet{
		Username: "DB_HOST, DB_PASS",
		Password: `{"DB_HOST":"localhost","DB_PASS":"p@ss"}`,
	})

	assert.NoError(t, err)
	bundle, ok := sec.(*EnvBundleSecret)
	assert.True(t, ok)
	assert.Equal(t, []EnvVar{
		{Key: "DB_HOST", Value: "localhost"},
		{Key: "DB_PASS", Value: "p@ss"},
	}, bundle.Vars)
}

func TestCanView(t *testing.T) {
	tests := []struct {
		name   string
		cred   Credential
		userID string
		want   bool
	}{
		{
			name:   "legacy visible to anyone",
			cred:   Credential{IsLegacy: true},
			userID: "user-9",
			want:   true,
		},
		{
			name:   "owner always views",
			cred:   Credential{OwnerID: "user-1"},
			userID: "user-1",
			want:   true,
		},
		{
			name:   "allow-listed user views",
			cred:   Credential{OwnerID: "user-1", AllowedUsers: []AllowedUser{{ID: "user-2"}}},
			userID: "user-2",
			want:   true,
		},
		{
			name:   "outsider denied",
			cred:   Credential{OwnerID: "user-1", AllowedUsers: []AllowedUser{{ID: "user-2"}}},
			userID: "user-3",
			want:   false,
		},
		{
			name:   "restricted with empty list is owner-only",
			cred:   Credential{OwnerID: "user-1"},
			userID: "user-2",
			want:   false,
		},
		{
			name:   "empty owner never matches empty user",
			cred:   Credential{},
			userID: "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(&tt.cred, tt.userID))
		})
	}
}

func TestCredential_Mode(t *testing.T) {
	assert.Equal(t, VisibilityEveryone, (&Credential{IsLegacy: true}).Mode())
	assert.Equal(t, VisibilityRestricted, (&Credential{OwnerID: "user-1"}).Mode())
}
