package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"vaultx-api/internal/domain"

	"github.com/google/uuid"
)

// Document persistence half of the Appwrite gateway: user records and bank
// links stored as documents in the provider-hosted database.

type userDocument struct {
	ID                string `json:"$id,omitempty"`
	AuthID            string `json:"userId"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Address1          string `json:"address1"`
	City              string `json:"city"`
	State             string `json:"state"`
	PostalCode        string `json:"postalCode"`
	DateOfBirth       string `json:"dateOfBirth"`
	SSN               string `json:"ssn"`
	DwollaCustomerID  string `json:"dwollaCustomerId"`
	DwollaCustomerURL string `json:"dwollaCustomerUrl"`
}

type bankDocument struct {
	ID               string `json:"$id,omitempty"`
	UserID           string `json:"userId"`
	ItemID           string `json:"bankId"`
	AccountID        string `json:"accountId"`
	AccessToken      string `json:"accessToken"`
	FundingSourceURL string `json:"fundingSourceUrl"`
	ShareableID      string `json:"shareableId"`
}

type documentList[T any] struct {
	Total     int `json:"total"`
	Documents []T `json:"documents"`
}

func (g *AppwriteGateway) collectionPath(collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", g.cfg.DatabaseID, collectionID)
}

// equalQuery builds an Appwrite equal() query string.
func equalQuery(attribute, value string) string {
	return fmt.Sprintf(`equal("%s", ["%s"])`, attribute, value)
}

// listDocuments fetches documents matching a single equal query.
func listDocuments[T any](ctx context.Context, g *AppwriteGateway, collectionID, attribute, value string) (*documentList[T], error) {
	query := url.Values{}
	query.Add("queries[]", equalQuery(attribute, value))
	path := g.collectionPath(collectionID) + "?" + query.Encode()

	var list documentList[T]
	if err := g.do(ctx, http.MethodGet, path, "", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateUser persists the application user record.
func (g *AppwriteGateway) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var doc userDocument
	err := g.do(ctx, http.MethodPost, g.collectionPath(g.cfg.UserCollectionID), "", map[string]any{
		"documentId": uuid.NewString(),
		"data": userDocument{
			AuthID:            u.AuthID,
			FirstName:         u.FirstName,
			LastName:          u.LastName,
			Email:             u.Email,
			Address1:          u.Address1,
			City:              u.City,
			State:             u.State,
			PostalCode:        u.PostalCode,
			DateOfBirth:       u.DateOfBirth,
			SSN:               u.SSN,
			DwollaCustomerID:  u.DwollaCustomerID,
			DwollaCustomerURL: u.DwollaCustomerURL,
		},
	}, &doc)
	if err != nil {
		return nil, err
	}
	user := userFromDocument(doc)
	return &user, nil
}

// GetUserByAuthID looks up the user record linked to an identity account.
func (g *AppwriteGateway) GetUserByAuthID(ctx context.Context, authID string) (*domain.User, error) {
	list, err := listDocuments[userDocument](ctx, g, g.cfg.UserCollectionID, "userId", authID)
	if err != nil {
		return nil, err
	}
	if len(list.Documents) == 0 {
		return nil, &domain.ProviderError{
			Provider: "appwrite",
			Code:     http.StatusNotFound,
			Type:     "document_not_found",
			Message:  "no user record for identity account",
		}
	}
	user := userFromDocument(list.Documents[0])
	return &user, nil
}

// CreateBankLink persists a linked bank account.
func (g *AppwriteGateway) CreateBankLink(ctx context.Context, l domain.BankAccountLink) (*domain.BankAccountLink, error) {
	var doc bankDocument
	err := g.do(ctx, http.MethodPost, g.collectionPath(g.cfg.BankCollectionID), "", map[string]any{
		"documentId": uuid.NewString(),
		"data": bankDocument{
			UserID:           l.UserID,
			ItemID:           l.ItemID,
			AccountID:        l.AccountID,
			AccessToken:      l.AccessToken,
			FundingSourceURL: l.FundingSourceURL,
			ShareableID:      l.ShareableID,
		},
	}, &doc)
	if err != nil {
		return nil, err
	}
	link := linkFromDocument(doc)
	return &link, nil
}

// ListBankLinks returns every bank link owned by userID.
func (g *AppwriteGateway) ListBankLinks(ctx context.Context, userID string) ([]domain.BankAccountLink, error) {
	list, err := listDocuments[bankDocument](ctx, g, g.cfg.BankCollectionID, "userId", userID)
	if err != nil {
		return nil, err
	}

	links := make([]domain.BankAccountLink, 0, len(list.Documents))
	for _, doc := range list.Documents {
		links = append(links, linkFromDocument(doc))
	}
	return links, nil
}

// GetBankLinkByAccountID resolves a bank link from its external account id.
func (g *AppwriteGateway) GetBankLinkByAccountID(ctx context.Context, accountID string) (*domain.BankAccountLink, error) {
	list, err := listDocuments[bankDocument](ctx, g, g.cfg.BankCollectionID, "accountId", accountID)
	if err != nil {
		return nil, err
	}
	if len(list.Documents) == 0 {
		return nil, domain.ErrBankLinkNotFound
	}
	link := linkFromDocument(list.Documents[0])
	return &link, nil
}

func userFromDocument(doc userDocument) domain.User {
	return domain.User{
		ID:                doc.ID,
		AuthID:            doc.AuthID,
		FirstName:         doc.FirstName,
		LastName:          doc.LastName,
		Email:             doc.Email,
		Address1:          doc.Address1,
		City:              doc.City,
		State:             doc.State,
		PostalCode:        doc.PostalCode,
		DateOfBirth:       doc.DateOfBirth,
		SSN:               doc.SSN,
		DwollaCustomerID:  doc.DwollaCustomerID,
		DwollaCustomerURL: doc.DwollaCustomerURL,
	}
}

func linkFromDocument(doc bankDocument) domain.BankAccountLink {
	return domain.BankAccountLink{
		ID:               doc.ID,
		UserID:           doc.UserID,
		ItemID:           doc.ItemID,
		AccountID:        doc.AccountID,
		AccessToken:      doc.AccessToken,
		FundingSourceURL: doc.FundingSourceURL,
		ShareableID:      doc.ShareableID,
	}
}
