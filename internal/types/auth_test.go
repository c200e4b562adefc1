//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserRequest_Validate(t *testing.T) {
	valid := func() RegisterUserRequest {
		return RegisterUserRequest{
			Email:     "  Jane.Doe@Example.COM ",
			Password:  "secret1",
			FirstName: "Jane",
			LastName:  "Doe",
		}
	}

	tests := []struct {
		name      string
		mutate    func(r *RegisterUserRequest)
		wantField string
		wantMsg   string
	}{
		{"valid", func(*RegisterUserRequest) {}, "", ""},
		{"missing email", func(r *RegisterUserRequest) { r.Email = "" }, "email", "is required"},
		{"bad email", func(r *RegisterUserRequest) { r.Email = "not-an-email" }, "email", "must be a valid email"},
		{"short password", func(r *RegisterUserRequest) { r.Password = "12345" }, "password", "must be at least 6 characters"},
		{"blank first name", func(r *RegisterUserRequest) { r.FirstName = "   " }, "firstName", "is required"},
		{"missing last name", func(r *RegisterUserRequest) { r.LastName = "" }, "lastName", "is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, "jane.doe@example.com", req.Email)
				return
			}
			require.Error(t, err)
			fe := FirstFieldError(err)
			assert.Equal(t, tt.wantField, fe.Field)
			assert.Equal(t, tt.wantMsg, fe.Message)
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{Email: "USER@example.com", Password: "x"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "user@example.com", req.Email)

	req = LoginRequest{Email: "user@example.com"}
	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, "password", FirstFieldError(err).Field)
}

func TestRegisterEmployerRequest_Validate(t *testing.T) {
	req := RegisterEmployerRequest{
		CompanyName: " Acme ",
		Email:       "hr@acme.io",
		Password:    "hunter22",
		Profile:     &EmployerProfile{Size: "11-50", Website: "https://acme.io"},
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Acme", req.CompanyName)

	req.Profile.Size = "12"
	err := req.Validate()
	require.Error(t, err)
	fe := FirstFieldError(err)
	assert.Equal(t, "profile.size", fe.Field)
	assert.Contains(t, fe.Message, "1-10, 11-50")
}

func TestUpdateUserProfileRequest_Validate(t *testing.T) {
	req := UpdateUserProfileRequest{
		Settings: &UserSettings{FontSize: "large"},
		Profile: &UserProfile{
			Preferences: JobPreferences{JobTypes: []string{"full-time", "contract"}},
		},
	}
	require.NoError(t, req.Validate())

	req.Profile.Preferences.JobTypes = []string{"gig"}
	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, "profile.preferences.jobTypes[0]", FirstFieldError(err).Field)

	req = UpdateUserProfileRequest{Settings: &UserSettings{FontSize: "huge"}}
	err = req.Validate()
	require.Error(t, err)
	assert.Equal(t, "settings.fontSize", FirstFieldError(err).Field)
}

func TestFirstFieldError_Fallbacks(t *testing.T) {
	fe := &FieldError{Field: "salary.max", Message: "too small"}
	assert.Same(t, fe, FirstFieldError(fe))

	got := FirstFieldError(errors.New("boom"))
	assert.Equal(t, "(root)", got.Field)
	assert.Equal(t, "(root) is invalid", got.Error())
}

func TestProfileNormalize(t *testing.T) {
	var p UserProfile
	p.Normalize()
	assert.NotNil(t, p.Skills)
	assert.NotNil(t, p.Experience)
	assert.NotNil(t, p.Preferences.JobTypes)

	var e EmployerProfile
	e.Normalize()
	assert.NotNil(t, e.InclusivityMetrics.AccessibilityFeatures)

	assert.Equal(t, "medium", DefaultUserSettings().FontSize)
}
