package usecase

import (
	"testing"

	"vaultx-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() OnboardingInput {
	return OnboardingInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "Ada@Example.com",
		Password:    "hunter22",
		Address1:    "1 Analytical Way",
		City:        "New York",
		State:       "NY",
		PostalCode:  "10001",
		DateOfBirth: "1990-05-21",
		SSN:         "123-45-6789",
	}
}

func TestNormalizeProfile_ListsEveryMissingField(t *testing.T) {
	in := validInput()
	in.FirstName = ""
	in.City = "   "
	in.SSN = ""

	_, err := NormalizeProfile(in)
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"firstName", "city", "ssn"}, ve.Fields)
}

func TestNormalizeProfile_NormalizesFields(t *testing.T) {
	in := validInput()
	in.State = " ny "
	in.Email = "  Ada@Example.com "

	profile, err := NormalizeProfile(in)
	require.NoError(t, err)

	assert.Equal(t, "NY", profile.State)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, "Ada Lovelace", profile.FullName())
}

func TestNormalizeProfile_StateNormalizationIdempotent(t *testing.T) {
	in := validInput()
	in.State = "NY"

	profile, err := NormalizeProfile(in)
	require.NoError(t, err)
	assert.Equal(t, "NY", profile.State)

	// Run the already-normalized profile through again.
	in.State = profile.State
	again, err := NormalizeProfile(in)
	require.NoError(t, err)
	assert.Equal(t, profile.State, again.State)
}

func TestNormalizeProfile_StateEnumeration(t *testing.T) {
	tests := []struct {
		name    string
		state   string
		wantErr bool
	}{
		{name: "valid lowercase", state: "ca"},
		{name: "valid uppercase", state: "TX"},
		{name: "federal district", state: "DC"},
		{name: "unknown code", state: "ZZ", wantErr: true},
		{name: "unknown code lowercase", state: "zz", wantErr: true},
		{name: "too long", state: "NYC", wantErr: true},
		{name: "too short", state: "N", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.State = tt.state

			_, err := NormalizeProfile(in)
			if tt.wantErr {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNormalizeProfile_DateOfBirthPattern(t *testing.T) {
	tests := []struct {
		dob     string
		wantErr bool
	}{
		{dob: "1990-05-21"},
		{dob: "05-21-1990", wantErr: true},
		{dob: "1990/05/21", wantErr: true},
		{dob: "90-05-21", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dob, func(t *testing.T) {
			in := validInput()
			in.DateOfBirth = tt.dob

			_, err := NormalizeProfile(in)
			if tt.wantErr {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				return
			}
			require.NoError(t, err)
		})
	}
}
