package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"vaultx-api/config"
	"vaultx-api/internal/domain"

	"github.com/shopspring/decimal"
)

const dwollaMediaType = "application/vnd.dwolla.v1.hal+json"

// dwollaBaseURL maps the enumerated environment name to the API host. The
// enumeration itself is enforced by config.Validate.
func dwollaBaseURL(environment string) string {
	if environment == "production" {
		return "https://api.dwolla.com"
	}
	return "https://api-sandbox.dwolla.com"
}

// DwollaGateway implements domain.PaymentNetwork against the Dwolla HAL API.
// Created resources are identified by the Location header of the response.
// OAuth client-credential tokens are cached until shortly before expiry.
type DwollaGateway struct {
	cfg        config.DwollaConfig
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewDwollaGateway creates a Dwolla gateway with tuned HTTP transport.
func NewDwollaGateway(cfg config.DwollaConfig, timeout time.Duration) *DwollaGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &DwollaGateway{
		cfg:     cfg,
		baseURL: dwollaBaseURL(cfg.Environment),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

type dwollaTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// dwollaError is the provider's error envelope. Code is a string tag such as
// "ValidationError" or "InvalidResourceState".
type dwollaError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// token returns a cached OAuth token, refreshing it when absent or within a
// minute of expiry.
func (g *DwollaGateway) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry.Add(-time.Minute)) {
		return g.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &domain.ProviderError{Provider: "dwolla", Type: "request_error", Message: err.Error(), Err: err}
	}
	req.SetBasicAuth(g.cfg.Key, g.cfg.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Provider: "dwolla", Type: "network_error", Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ProviderError{
			Provider: "dwolla",
			Code:     resp.StatusCode,
			Type:     "token_error",
			Message:  "client credentials rejected",
		}
	}

	var token dwollaTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", &domain.ProviderError{Provider: "dwolla", Code: resp.StatusCode, Type: "decode_error", Message: err.Error(), Err: err}
	}

	g.accessToken = token.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return g.accessToken, nil
}

// post executes one authenticated Dwolla request. When out is nil the
// Location header of the response is returned instead of a decoded body.
func (g *DwollaGateway) post(ctx context.Context, path string, body, out any) (string, error) {
	accessToken, err := g.token(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode dwolla request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", &domain.ProviderError{Provider: "dwolla", Type: "request_error", Message: err.Error(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", dwollaMediaType)
	req.Header.Set("Accept", dwollaMediaType)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Provider: "dwolla", Type: "network_error", Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr dwollaError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Code == "" {
			apiErr = dwollaError{Code: "unknown_error", Message: resp.Status}
		}
		return "", &domain.ProviderError{
			Provider: "dwolla",
			Code:     resp.StatusCode,
			Type:     apiErr.Code,
			Message:  apiErr.Message,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return "", &domain.ProviderError{Provider: "dwolla", Code: resp.StatusCode, Type: "decode_error", Message: err.Error(), Err: err}
		}
		return "", nil
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", domain.ErrMissingLocation
	}
	return location, nil
}

// CreateCustomer registers a personal verified customer and returns its
// resource URL.
func (g *DwollaGateway) CreateCustomer(ctx context.Context, p domain.CustomerProfile) (string, error) {
	return g.post(ctx, "/customers", map[string]string{
		"firstName":   p.FirstName,
		"lastName":    p.LastName,
		"email":       p.Email,
		"address1":    p.Address1,
		"city":        p.City,
		"state":       p.State,
		"postalCode":  p.PostalCode,
		"dateOfBirth": p.DateOfBirth,
		"ssn":         p.SSN,
		"type":        "personal",
	}, nil)
}

// CreateOnDemandAuthorization obtains the customer authorization links
// required for funding-source registration.
func (g *DwollaGateway) CreateOnDemandAuthorization(ctx context.Context) (*domain.OnDemandAuthorization, error) {
	var auth domain.OnDemandAuthorization
	if _, err := g.post(ctx, "/on-demand-authorizations", map[string]string{}, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// CreateFundingSource registers a funding source on a customer from an
// aggregator processor token and returns its resource URL.
func (g *DwollaGateway) CreateFundingSource(ctx context.Context, customerID, name, processorToken string, auth *domain.OnDemandAuthorization) (string, error) {
	body := map[string]any{
		"name":       name,
		"plaidToken": processorToken,
	}
	if auth != nil {
		body["_links"] = auth.Links
	}
	return g.post(ctx, fmt.Sprintf("/customers/%s/funding-sources", customerID), body, nil)
}

// CreateTransfer moves amount between two funding sources and returns the
// transfer resource URL.
func (g *DwollaGateway) CreateTransfer(ctx context.Context, sourceURL, destinationURL string, amount decimal.Decimal, currency string) (string, error) {
	return g.post(ctx, "/transfers", map[string]any{
		"_links": map[string]domain.ResourceLink{
			"source":      {Href: sourceURL},
			"destination": {Href: destinationURL},
		},
		"amount": map[string]string{
			"currency": currency,
			"value":    amount.StringFixed(2),
		},
	}, nil)
}
