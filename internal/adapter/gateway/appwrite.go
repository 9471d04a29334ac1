package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vaultx-api/config"
	"vaultx-api/internal/domain"
)

// AppwriteGateway implements domain.IdentityProvider and domain.UserStore
// against the Appwrite REST API. Account and session calls run in session
// scope when a secret is supplied; document calls always run with the server
// API key.
type AppwriteGateway struct {
	cfg        config.AppwriteConfig
	httpClient *http.Client
}

// NewAppwriteGateway creates an Appwrite gateway with tuned HTTP transport.
func NewAppwriteGateway(cfg config.AppwriteConfig, timeout time.Duration) *AppwriteGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &AppwriteGateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// appwriteError is the provider's error envelope.
type appwriteError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

type accountResponse struct {
	ID        string `json:"$id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"$createdAt"`
}

type sessionResponse struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
	Expire string `json:"expire"`
}

// do executes one Appwrite request. sessionSecret selects session scope;
// when empty the server API key is used instead.
func (g *AppwriteGateway) do(ctx context.Context, method, path, sessionSecret string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode appwrite request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.cfg.Endpoint+path, reader)
	if err != nil {
		return &domain.ProviderError{Provider: "appwrite", Code: 0, Type: "request_error", Message: err.Error(), Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", g.cfg.Project)
	if sessionSecret != "" {
		req.Header.Set("X-Appwrite-Session", sessionSecret)
	} else {
		req.Header.Set("X-Appwrite-Key", g.cfg.APIKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &domain.ProviderError{Provider: "appwrite", Code: 0, Type: "network_error", Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr appwriteError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Type == "" {
			apiErr = appwriteError{Message: resp.Status, Code: resp.StatusCode, Type: "unknown_error"}
		}
		return &domain.ProviderError{
			Provider: "appwrite",
			Code:     resp.StatusCode,
			Type:     apiErr.Type,
			Message:  apiErr.Message,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.ProviderError{Provider: "appwrite", Code: resp.StatusCode, Type: "decode_error", Message: err.Error(), Err: err}
	}
	return nil
}

// CreateAccount creates an identity account.
func (g *AppwriteGateway) CreateAccount(ctx context.Context, id, email, password, name string) (*domain.Identity, error) {
	var acc accountResponse
	err := g.do(ctx, http.MethodPost, "/account", "", map[string]string{
		"userId":   id,
		"email":    email,
		"password": password,
		"name":     name,
	}, &acc)
	if err != nil {
		return nil, err
	}
	return identityFromAccount(acc), nil
}

// CreateEmailSession verifies credentials and issues a session.
func (g *AppwriteGateway) CreateEmailSession(ctx context.Context, email, password string) (*domain.Session, error) {
	var sess sessionResponse
	err := g.do(ctx, http.MethodPost, "/account/sessions/email", "", map[string]string{
		"email":    email,
		"password": password,
	}, &sess)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:     sess.ID,
		UserID: sess.UserID,
		Secret: sess.Secret,
	}
	if expire, parseErr := time.Parse(time.RFC3339, sess.Expire); parseErr == nil {
		session.Expire = expire
	}
	return session, nil
}

// CurrentIdentity resolves the identity owning a session secret.
func (g *AppwriteGateway) CurrentIdentity(ctx context.Context, sessionSecret string) (*domain.Identity, error) {
	if sessionSecret == "" {
		return nil, domain.ErrSessionNotFound
	}

	var acc accountResponse
	if err := g.do(ctx, http.MethodGet, "/account", sessionSecret, nil, &acc); err != nil {
		return nil, err
	}
	return identityFromAccount(acc), nil
}

// DeleteSession invalidates the current session at the provider.
func (g *AppwriteGateway) DeleteSession(ctx context.Context, sessionSecret string) error {
	return g.do(ctx, http.MethodDelete, "/account/sessions/current", sessionSecret, nil, nil)
}

func identityFromAccount(acc accountResponse) *domain.Identity {
	identity := &domain.Identity{
		ID:    acc.ID,
		Email: acc.Email,
		Name:  acc.Name,
	}
	if createdAt, err := time.Parse(time.RFC3339, acc.CreatedAt); err == nil {
		identity.CreatedAt = createdAt
	}
	return identity
}
