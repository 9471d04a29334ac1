package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"vaultx-api/internal/domain"
)

// OnboardingInput is the raw create-account payload as submitted by the
// sign-up form. Nothing here is trusted; NormalizeProfile is the only way to
// turn it into a CustomerProfile.
type OnboardingInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`
}

// validStates enumerates the 50 US state codes plus the federal district.
var validStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

// dateOfBirthPattern is a shape check only; calendar validity is left to the
// payment network.
var dateOfBirthPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeProfile validates and normalizes an onboarding payload. It runs
// entirely locally; a returned error means no provider call was made and no
// external resource exists. Every missing required field is reported, not
// just the first.
func NormalizeProfile(in OnboardingInput) (domain.CustomerProfile, error) {
	profile := domain.CustomerProfile{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Address1:    strings.TrimSpace(in.Address1),
		City:        strings.TrimSpace(in.City),
		State:       strings.ToUpper(strings.TrimSpace(in.State)),
		PostalCode:  strings.TrimSpace(in.PostalCode),
		DateOfBirth: strings.TrimSpace(in.DateOfBirth),
		SSN:         strings.TrimSpace(in.SSN),
	}

	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"firstName", profile.FirstName},
		{"lastName", profile.LastName},
		{"email", profile.Email},
		{"address1", profile.Address1},
		{"city", profile.City},
		{"state", profile.State},
		{"postalCode", profile.PostalCode},
		{"dateOfBirth", profile.DateOfBirth},
		{"ssn", profile.SSN},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return domain.CustomerProfile{}, &domain.ValidationError{Fields: missing}
	}

	if len(profile.State) != 2 {
		return domain.CustomerProfile{}, &domain.ValidationError{
			Reason: fmt.Sprintf("state must be exactly 2 characters, got %q", profile.State),
		}
	}
	if !validStates[profile.State] {
		return domain.CustomerProfile{}, &domain.ValidationError{
			Reason: fmt.Sprintf("invalid state abbreviation %q", profile.State),
		}
	}

	if !dateOfBirthPattern.MatchString(profile.DateOfBirth) {
		return domain.CustomerProfile{}, &domain.ValidationError{
			Reason: fmt.Sprintf("date of birth must be in YYYY-MM-DD format, got %q", profile.DateOfBirth),
		}
	}

	return profile, nil
}
