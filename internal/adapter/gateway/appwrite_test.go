package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vaultx-api/config"
	"vaultx-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appwriteConfig(endpoint string) config.AppwriteConfig {
	return config.AppwriteConfig{
		Endpoint:         endpoint,
		Project:          "vaultx",
		APIKey:           "server-key",
		DatabaseID:       "db",
		UserCollectionID: "users",
		BankCollectionID: "banks",
	}
}

func TestAppwriteGateway_CreateAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/account", r.URL.Path)
		assert.Equal(t, "vaultx", r.Header.Get("X-Appwrite-Project"))
		assert.Equal(t, "server-key", r.Header.Get("X-Appwrite-Key"))
		assert.Empty(t, r.Header.Get("X-Appwrite-Session"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "Ada Lovelace", body["name"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(accountResponse{
			ID:        "account-1",
			Email:     "ada@example.com",
			Name:      "Ada Lovelace",
			CreatedAt: "2026-08-27T10:00:00.000+00:00",
		})
	}))
	defer server.Close()

	gw := NewAppwriteGateway(appwriteConfig(server.URL), 5*time.Second)
	identity, err := gw.CreateAccount(context.Background(), "id-1", "ada@example.com", "hunter22", "Ada Lovelace")

	require.NoError(t, err)
	assert.Equal(t, "account-1", identity.ID)
	assert.Equal(t, "ada@example.com", identity.Email)
}

func TestAppwriteGateway_CreateEmailSession_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(appwriteError{
			Message: "Invalid credentials. Please check the email and password.",
			Code:    401,
			Type:    "user_invalid_credentials",
		})
	}))
	defer server.Close()

	gw := NewAppwriteGateway(appwriteConfig(server.URL), 5*time.Second)
	session, err := gw.CreateEmailSession(context.Background(), "ada@example.com", "wrong")

	assert.Nil(t, session)
	pe, ok := domain.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, "appwrite", pe.Provider)
	assert.Equal(t, 401, pe.Code)
	assert.Equal(t, "user_invalid_credentials", pe.Type)
}

func TestAppwriteGateway_CurrentIdentity_UsesSessionScope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account", r.URL.Path)
		assert.Equal(t, "cookie-secret", r.Header.Get("X-Appwrite-Session"))
		assert.Empty(t, r.Header.Get("X-Appwrite-Key"))

		json.NewEncoder(w).Encode(accountResponse{ID: "account-1", Email: "ada@example.com"})
	}))
	defer server.Close()

	gw := NewAppwriteGateway(appwriteConfig(server.URL), 5*time.Second)
	identity, err := gw.CurrentIdentity(context.Background(), "cookie-secret")

	require.NoError(t, err)
	assert.Equal(t, "account-1", identity.ID)
}

func TestAppwriteGateway_CurrentIdentity_EmptySecret(t *testing.T) {
	gw := NewAppwriteGateway(appwriteConfig("http://unused"), 5*time.Second)
	identity, err := gw.CurrentIdentity(context.Background(), "")

	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestAppwriteGateway_CreateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/databases/db/collections/users/documents", r.URL.Path)

		var body struct {
			DocumentID string       `json:"documentId"`
			Data       userDocument `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body.DocumentID)
		assert.Equal(t, "cus-42", body.Data.DwollaCustomerID)

		doc := body.Data
		doc.ID = "user-doc-1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(doc)
	}))
	defer server.Close()

	gw := NewAppwriteGateway(appwriteConfig(server.URL), 5*time.Second)
	user, err := gw.CreateUser(context.Background(), domain.User{
		AuthID:           "account-1",
		FirstName:        "Ada",
		DwollaCustomerID: "cus-42",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-doc-1", user.ID)
	assert.Equal(t, "account-1", user.AuthID)
}

func TestAppwriteGateway_GetBankLinkByAccountID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/databases/db/collections/banks/documents", r.URL.Path)
		assert.Equal(t, `equal("accountId", ["acct-1"])`, r.URL.Query().Get("queries[]"))

		json.NewEncoder(w).Encode(documentList[bankDocument]{
			Total:     1,
			Documents: []bankDocument{{ID: "bank-doc-1", AccountID: "acct-1", FundingSourceURL: "https://example.com/fs-1"}},
		})
	}))
	defer server.Close()

	gw := NewAppwriteGateway(appwriteConfig(server.URL), 5*time.Second)
	link, err := gw.GetBankLinkByAccountID(context.Background(), "acct-1")

	require.NoError(t, err)
	assert.Equal(t, "bank-doc-1", link.ID)
}

func TestAppwriteGateway_GetBankLinkByAccountID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(documentList[bankDocument]{Total: 0})
	}))
	defer server.Close()

	gw := NewAppwriteGateway(appwriteConfig(server.URL), 5*time.Second)
	link, err := gw.GetBankLinkByAccountID(context.Background(), "acct-missing")

	assert.Nil(t, link)
	assert.True(t, errors.Is(err, domain.ErrBankLinkNotFound))
}

func TestAppwriteGateway_MalformedErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream error</html>"))
	}))
	defer server.Close()

	gw := NewAppwriteGateway(appwriteConfig(server.URL), 5*time.Second)
	_, err := gw.CreateAccount(context.Background(), "id", "a@b.c", "pw", "n")

	pe, ok := domain.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, pe.Code)
	assert.Equal(t, "unknown_error", pe.Type)
}
