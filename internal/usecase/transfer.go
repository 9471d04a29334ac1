package usecase

import (
	"context"
	"log/slog"

	"vaultx-api/internal/domain"

	"github.com/shopspring/decimal"
)

// ListBanks returns a user's persisted bank links for the dashboard.
type ListBanks struct {
	store domain.UserStore
}

// NewListBanks creates the bank-listing usecase.
func NewListBanks(store domain.UserStore) *ListBanks {
	return &ListBanks{store: store}
}

// Execute lists every bank link owned by userID. A user with no linked
// accounts gets an empty slice, not an error.
func (uc *ListBanks) Execute(ctx context.Context, userID string) ([]domain.BankAccountLink, error) {
	return uc.store.ListBankLinks(ctx, userID)
}

// Transfer moves funds between two funding sources on the payment network.
// The sender is identified by one of their own bank links, the recipient by
// the shareable id they handed out.
type Transfer struct {
	payments domain.PaymentNetwork
	store    domain.UserStore
	logger   *slog.Logger
}

// NewTransfer creates the transfer workflow.
func NewTransfer(payments domain.PaymentNetwork, store domain.UserStore, logger *slog.Logger) *Transfer {
	return &Transfer{payments: payments, store: store, logger: logger}
}

// TransferInput is a validated transfer request.
type TransferInput struct {
	SenderBankID         string          // bank-link document id owned by the sender
	RecipientShareableID string          // recipient's encoded account id
	Amount               decimal.Decimal // USD
}

// Execute resolves both funding sources and submits the transfer. Amounts
// must be strictly positive; resolution failures surface before any call to
// the payment network.
func (uc *Transfer) Execute(ctx context.Context, sender *domain.User, in TransferInput) (string, error) {
	if !in.Amount.IsPositive() {
		return "", &domain.ValidationError{Reason: "transfer amount must be positive"}
	}

	links, err := uc.store.ListBankLinks(ctx, sender.ID)
	if err != nil {
		return "", err
	}
	var source *domain.BankAccountLink
	for i := range links {
		if links[i].ID == in.SenderBankID {
			source = &links[i]
			break
		}
	}
	if source == nil {
		return "", domain.ErrBankLinkNotFound
	}

	recipientAccountID, err := DecodeShareableID(in.RecipientShareableID)
	if err != nil {
		return "", &domain.ValidationError{Reason: "malformed shareable id"}
	}

	destination, err := uc.store.GetBankLinkByAccountID(ctx, recipientAccountID)
	if err != nil {
		return "", err
	}

	transferURL, err := uc.payments.CreateTransfer(ctx, source.FundingSourceURL, destination.FundingSourceURL, in.Amount, "USD")
	if err != nil {
		return "", err
	}

	uc.logger.InfoContext(ctx, "transfer submitted",
		"sender_id", sender.ID,
		"amount", in.Amount.StringFixed(2))
	return transferURL, nil
}
