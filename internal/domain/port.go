package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// IdentityProvider wraps account and session operations at the identity
// provider. Session credentials are passed explicitly; nothing here reads
// ambient request state.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, id, email, password, name string) (*Identity, error)
	CreateEmailSession(ctx context.Context, email, password string) (*Session, error)
	CurrentIdentity(ctx context.Context, sessionSecret string) (*Identity, error)
	DeleteSession(ctx context.Context, sessionSecret string) error
}

// UserStore persists application user records and bank links in the
// provider-hosted document database.
type UserStore interface {
	CreateUser(ctx context.Context, u User) (*User, error)
	GetUserByAuthID(ctx context.Context, authID string) (*User, error)
	CreateBankLink(ctx context.Context, l BankAccountLink) (*BankAccountLink, error)
	ListBankLinks(ctx context.Context, userID string) ([]BankAccountLink, error)
	GetBankLinkByAccountID(ctx context.Context, accountID string) (*BankAccountLink, error)
}

// BankAggregator wraps the bank-linking aggregator: link tokens for the
// hosted linking UI, public-token exchange, account metadata and processor
// tokens.
type BankAggregator interface {
	CreateLinkToken(ctx context.Context, userID, clientName string) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*TokenExchange, error)
	GetAccounts(ctx context.Context, accessToken string) ([]BankAccount, error)
	CreateProcessorToken(ctx context.Context, accessToken, accountID string) (string, error)
}

// PaymentNetwork wraps the payment network holding customers, funding
// sources and transfers. Create calls return the URL of the created
// resource, which is how the network identifies them.
type PaymentNetwork interface {
	CreateCustomer(ctx context.Context, p CustomerProfile) (string, error)
	CreateOnDemandAuthorization(ctx context.Context) (*OnDemandAuthorization, error)
	CreateFundingSource(ctx context.Context, customerID, name, processorToken string, auth *OnDemandAuthorization) (string, error)
	CreateTransfer(ctx context.Context, sourceURL, destinationURL string, amount decimal.Decimal, currency string) (string, error)
}
