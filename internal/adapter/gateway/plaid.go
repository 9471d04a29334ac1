package gateway

import (
	"context"
	"net/http"

	"vaultx-api/config"
	"vaultx-api/internal/domain"

	"github.com/plaid/plaid-go/v27/plaid"
	"github.com/shopspring/decimal"
)

// PlaidGateway implements domain.BankAggregator over the Plaid SDK.
type PlaidGateway struct {
	client *plaid.APIClient
}

// NewPlaidGateway creates a Plaid gateway for the configured environment.
func NewPlaidGateway(cfg config.PlaidConfig) *PlaidGateway {
	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	if cfg.Environment == "production" {
		configuration.UseEnvironment(plaid.Production)
	} else {
		configuration.UseEnvironment(plaid.Sandbox)
	}

	return &PlaidGateway{client: plaid.NewAPIClient(configuration)}
}

// normalizeError converts a failed SDK call into a *domain.ProviderError.
func normalizeError(err error, resp *http.Response) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	if plaidErr, convErr := plaid.ToPlaidError(err); convErr == nil {
		return &domain.ProviderError{
			Provider: "plaid",
			Code:     status,
			Type:     plaidErr.GetErrorCode(),
			Message:  plaidErr.GetErrorMessage(),
			Err:      err,
		}
	}

	return &domain.ProviderError{
		Provider: "plaid",
		Code:     status,
		Type:     "API_ERROR",
		Message:  err.Error(),
		Err:      err,
	}
}

// CreateLinkToken issues a link token for the hosted linking UI, scoped to
// the auth product for US accounts.
func (g *PlaidGateway) CreateLinkToken(ctx context.Context, userID, clientName string) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{ClientUserId: userID}
	request := plaid.NewLinkTokenCreateRequest(clientName, "en", []plaid.CountryCode{plaid.COUNTRYCODE_US}, user)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_AUTH})

	resp, httpResp, err := g.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", normalizeError(err, httpResp)
	}
	return resp.GetLinkToken(), nil
}

// ExchangePublicToken trades a temporary public token for a durable access
// token and item id.
func (g *PlaidGateway) ExchangePublicToken(ctx context.Context, publicToken string) (*domain.TokenExchange, error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)

	resp, httpResp, err := g.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return nil, normalizeError(err, httpResp)
	}

	return &domain.TokenExchange{
		AccessToken: resp.GetAccessToken(),
		ItemID:      resp.GetItemId(),
	}, nil
}

// GetAccounts fetches metadata for every account linked under accessToken.
func (g *PlaidGateway) GetAccounts(ctx context.Context, accessToken string) ([]domain.BankAccount, error) {
	request := plaid.NewAccountsGetRequest(accessToken)

	resp, httpResp, err := g.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
	if err != nil {
		return nil, normalizeError(err, httpResp)
	}

	raw := resp.GetAccounts()
	accounts := make([]domain.BankAccount, 0, len(raw))
	for _, a := range raw {
		balances := a.GetBalances()
		accounts = append(accounts, domain.BankAccount{
			ID:               a.GetAccountId(),
			Name:             a.GetName(),
			OfficialName:     a.GetOfficialName(),
			Mask:             a.GetMask(),
			Subtype:          string(a.GetSubtype()),
			AvailableBalance: decimal.NewFromFloat(balances.GetAvailable()),
			CurrentBalance:   decimal.NewFromFloat(balances.GetCurrent()),
		})
	}
	return accounts, nil
}

// CreateProcessorToken mints a token scoped to the payment-network
// processor for one linked account.
func (g *PlaidGateway) CreateProcessorToken(ctx context.Context, accessToken, accountID string) (string, error) {
	request := plaid.NewProcessorTokenCreateRequest(accessToken, accountID, "dwolla")

	resp, httpResp, err := g.client.PlaidApi.ProcessorTokenCreate(ctx).ProcessorTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", normalizeError(err, httpResp)
	}
	return resp.GetProcessorToken(), nil
}
