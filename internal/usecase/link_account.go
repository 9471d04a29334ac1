package usecase

import (
	"context"
	"encoding/base64"
	"log/slog"

	"vaultx-api/internal/domain"
)

// CreateLinkToken issues the temporary token the hosted linking UI needs to
// start an aggregator flow for a user.
type CreateLinkToken struct {
	aggregator domain.BankAggregator
}

// NewCreateLinkToken creates the link-token usecase.
func NewCreateLinkToken(aggregator domain.BankAggregator) *CreateLinkToken {
	return &CreateLinkToken{aggregator: aggregator}
}

// Execute returns a fresh link token bound to the user.
func (uc *CreateLinkToken) Execute(ctx context.Context, user *domain.User) (string, error) {
	clientName := user.FirstName + " " + user.LastName
	return uc.aggregator.CreateLinkToken(ctx, user.AuthID, clientName)
}

// LinkAccount runs the account-linking workflow once the user returns from
// the hosted linking UI with a public token: exchange it, pick the linked
// account, mint a processor token, register a funding source at the payment
// network, and persist the bank link. Linear, first failure aborts, no
// compensation of earlier steps.
type LinkAccount struct {
	aggregator domain.BankAggregator
	payments   domain.PaymentNetwork
	store      domain.UserStore
	logger     *slog.Logger
}

// NewLinkAccount creates the account-linking workflow.
func NewLinkAccount(aggregator domain.BankAggregator, payments domain.PaymentNetwork, store domain.UserStore, logger *slog.Logger) *LinkAccount {
	return &LinkAccount{aggregator: aggregator, payments: payments, store: store, logger: logger}
}

// Execute exchanges publicToken and registers the first returned account as
// a funding source for user. An empty account set is a hard error; the
// workflow never indexes into an empty response.
func (uc *LinkAccount) Execute(ctx context.Context, user *domain.User, publicToken string) (*domain.BankAccountLink, error) {
	exchange, err := uc.aggregator.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.aggregator.GetAccounts(ctx, exchange.AccessToken)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, domain.ErrNoLinkedAccounts
	}
	// First account only; the linking UI is configured for single-account
	// selection.
	account := accounts[0]

	processorToken, err := uc.aggregator.CreateProcessorToken(ctx, exchange.AccessToken, account.ID)
	if err != nil {
		return nil, err
	}

	auth, err := uc.payments.CreateOnDemandAuthorization(ctx)
	if err != nil {
		return nil, err
	}

	fundingSourceURL, err := uc.payments.CreateFundingSource(ctx, user.DwollaCustomerID, account.Name, processorToken, auth)
	if err != nil {
		return nil, err
	}

	link, err := uc.store.CreateBankLink(ctx, domain.BankAccountLink{
		UserID:           user.ID,
		ItemID:           exchange.ItemID,
		AccountID:        account.ID,
		AccessToken:      exchange.AccessToken,
		FundingSourceURL: fundingSourceURL,
		ShareableID:      EncodeShareableID(account.ID),
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "bank account linked",
		"user_id", user.ID,
		"item_id", exchange.ItemID,
		"account_mask", account.Mask)
	return link, nil
}

// EncodeShareableID derives the opaque identifier a user may share as a
// transfer destination. Reversible by design so transfers can resolve it
// back to the account.
func EncodeShareableID(accountID string) string {
	return base64.StdEncoding.EncodeToString([]byte(accountID))
}

// DecodeShareableID reverses EncodeShareableID.
func DecodeShareableID(shareableID string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(shareableID)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
