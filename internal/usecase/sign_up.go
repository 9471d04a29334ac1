package usecase

import (
	"context"
	"log/slog"
	"strings"

	"vaultx-api/internal/domain"

	"github.com/google/uuid"
)

// SignUp runs the onboarding workflow: validate, create the identity
// account, create the payment-network customer, persist the user record,
// then issue a session. The sequence is strictly linear and stops at the
// first failure; earlier steps are not compensated, so a mid-sequence
// failure can leave orphaned provider records.
type SignUp struct {
	identity domain.IdentityProvider
	payments domain.PaymentNetwork
	store    domain.UserStore
	logger   *slog.Logger
}

// NewSignUp creates the onboarding workflow.
func NewSignUp(identity domain.IdentityProvider, payments domain.PaymentNetwork, store domain.UserStore, logger *slog.Logger) *SignUp {
	return &SignUp{identity: identity, payments: payments, store: store, logger: logger}
}

// Execute processes one sign-up request. On success it returns the persisted
// user and the freshly issued session; the caller owns setting the cookie.
func (uc *SignUp) Execute(ctx context.Context, in OnboardingInput) (*domain.User, *domain.Session, error) {
	profile, err := NormalizeProfile(in)
	if err != nil {
		return nil, nil, err
	}

	account, err := uc.identity.CreateAccount(ctx, uuid.NewString(), profile.Email, in.Password, profile.FullName())
	if err != nil {
		return nil, nil, err
	}
	uc.logger.InfoContext(ctx, "identity account created", "account_id", account.ID)

	customerURL, err := uc.payments.CreateCustomer(ctx, profile)
	if err != nil {
		// The identity account already exists at this point and is not
		// cleaned up.
		return nil, nil, err
	}
	customerID := extractCustomerID(customerURL)
	uc.logger.InfoContext(ctx, "payment customer created", "customer_id", customerID)

	user, err := uc.store.CreateUser(ctx, domain.User{
		AuthID:            account.ID,
		FirstName:         profile.FirstName,
		LastName:          profile.LastName,
		Email:             profile.Email,
		Address1:          profile.Address1,
		City:              profile.City,
		State:             profile.State,
		PostalCode:        profile.PostalCode,
		DateOfBirth:       profile.DateOfBirth,
		SSN:               profile.SSN,
		DwollaCustomerID:  customerID,
		DwollaCustomerURL: customerURL,
	})
	if err != nil {
		return nil, nil, err
	}

	session, err := uc.identity.CreateEmailSession(ctx, profile.Email, in.Password)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.InfoContext(ctx, "sign-up completed", "user_id", user.ID)
	return user, session, nil
}

// extractCustomerID returns the trailing path segment of a payment-network
// resource URL, which is the customer identifier.
func extractCustomerID(customerURL string) string {
	trimmed := strings.TrimRight(customerURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
