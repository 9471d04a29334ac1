package domain

import "github.com/shopspring/decimal"

// TokenExchange is the durable credential pair returned by the aggregator
// when a temporary public token is exchanged.
type TokenExchange struct {
	AccessToken string
	ItemID      string
}

// BankAccount is linked-account metadata fetched from the aggregator.
type BankAccount struct {
	ID               string
	Name             string
	OfficialName     string
	Mask             string
	Subtype          string
	AvailableBalance decimal.Decimal
	CurrentBalance   decimal.Decimal
}

// BankAccountLink is the persisted record associating a User with a linked
// external account and its payment-network funding source. ShareableID is a
// reversible encoding of AccountID, safe to hand to other users as a
// transfer destination.
type BankAccountLink struct {
	ID               string `json:"id"`
	UserID           string `json:"userId"`
	ItemID           string `json:"bankId"`
	AccountID        string `json:"accountId"`
	AccessToken      string `json:"-"`
	FundingSourceURL string `json:"fundingSourceUrl"`
	ShareableID      string `json:"shareableId"`
}
