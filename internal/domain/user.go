package domain

import "time"

// Identity is an authenticated account at the identity provider.
type Identity struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// Session is an email/password session issued by the identity provider.
// Secret is the opaque credential carried in the session cookie; expiry is
// enforced provider-side.
type Session struct {
	ID     string
	UserID string
	Secret string
	Expire time.Time
}

// User is the persisted application user record. It links the identity
// account to the payment-network customer. Created once at sign-up and never
// updated by this service.
type User struct {
	ID                string `json:"id"`
	AuthID            string `json:"userId"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Address1          string `json:"address1"`
	City              string `json:"city"`
	State             string `json:"state"`
	PostalCode        string `json:"postalCode"`
	DateOfBirth       string `json:"dateOfBirth"`
	SSN               string `json:"-"`
	DwollaCustomerID  string `json:"dwollaCustomerId"`
	DwollaCustomerURL string `json:"dwollaCustomerUrl"`
}

// CustomerProfile is the normalized onboarding payload sent to the payment
// network when creating a customer. Produced by the validation gate; all
// fields are trimmed, state upper-cased, email lower-cased.
type CustomerProfile struct {
	FirstName   string
	LastName    string
	Email       string
	Address1    string
	City        string
	State       string
	PostalCode  string
	DateOfBirth string
	SSN         string
}

// FullName returns the display name used for the identity account.
func (p CustomerProfile) FullName() string {
	return p.FirstName + " " + p.LastName
}
