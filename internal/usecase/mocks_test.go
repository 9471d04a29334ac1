package usecase

import (
	"context"

	"vaultx-api/internal/domain"

	"github.com/shopspring/decimal"
)

// callRecorder tracks the order of provider calls across mocks.
type callRecorder struct {
	calls []string
}

func (r *callRecorder) record(name string) {
	r.calls = append(r.calls, name)
}

// mockIdentity implements domain.IdentityProvider.
type mockIdentity struct {
	recorder *callRecorder

	createAccountCalls int
	createAccountErr   error
	account            *domain.Identity

	createSessionCalls int
	createSessionErr   error
	session            *domain.Session

	currentIdentityErr error
	identity           *domain.Identity

	deleteSessionCalls int
	deleteSessionErr   error
}

func (m *mockIdentity) CreateAccount(_ context.Context, id, email, _, name string) (*domain.Identity, error) {
	m.createAccountCalls++
	if m.recorder != nil {
		m.recorder.record("create-account")
	}
	if m.createAccountErr != nil {
		return nil, m.createAccountErr
	}
	if m.account != nil {
		return m.account, nil
	}
	return &domain.Identity{ID: id, Email: email, Name: name}, nil
}

func (m *mockIdentity) CreateEmailSession(_ context.Context, _, _ string) (*domain.Session, error) {
	m.createSessionCalls++
	if m.recorder != nil {
		m.recorder.record("create-session")
	}
	if m.createSessionErr != nil {
		return nil, m.createSessionErr
	}
	if m.session != nil {
		return m.session, nil
	}
	return &domain.Session{ID: "session-1", Secret: "secret-1"}, nil
}

func (m *mockIdentity) CurrentIdentity(_ context.Context, _ string) (*domain.Identity, error) {
	if m.recorder != nil {
		m.recorder.record("current-identity")
	}
	if m.currentIdentityErr != nil {
		return nil, m.currentIdentityErr
	}
	if m.identity != nil {
		return m.identity, nil
	}
	return &domain.Identity{ID: "account-1", Email: "user@example.com"}, nil
}

func (m *mockIdentity) DeleteSession(_ context.Context, _ string) error {
	m.deleteSessionCalls++
	if m.recorder != nil {
		m.recorder.record("delete-session")
	}
	return m.deleteSessionErr
}

// mockPayments implements domain.PaymentNetwork.
type mockPayments struct {
	recorder *callRecorder

	createCustomerCalls int
	createCustomerErr   error
	customerURL         string

	createAuthCalls int
	createAuthErr   error

	createFundingSourceCalls int
	createFundingSourceErr   error
	fundingSourceURL         string

	createTransferCalls int
	createTransferErr   error
	transferURL         string
	lastSourceURL       string
	lastDestinationURL  string
	lastAmount          decimal.Decimal
	lastCurrency        string
}

func (m *mockPayments) CreateCustomer(_ context.Context, _ domain.CustomerProfile) (string, error) {
	m.createCustomerCalls++
	if m.recorder != nil {
		m.recorder.record("create-customer")
	}
	if m.createCustomerErr != nil {
		return "", m.createCustomerErr
	}
	return m.customerURL, nil
}

func (m *mockPayments) CreateOnDemandAuthorization(_ context.Context) (*domain.OnDemandAuthorization, error) {
	m.createAuthCalls++
	if m.recorder != nil {
		m.recorder.record("create-on-demand-authorization")
	}
	if m.createAuthErr != nil {
		return nil, m.createAuthErr
	}
	return &domain.OnDemandAuthorization{
		Links: map[string]domain.ResourceLink{"self": {Href: "https://api-sandbox.dwolla.com/on-demand-authorizations/auth-1"}},
	}, nil
}

func (m *mockPayments) CreateFundingSource(_ context.Context, _, _, _ string, _ *domain.OnDemandAuthorization) (string, error) {
	m.createFundingSourceCalls++
	if m.recorder != nil {
		m.recorder.record("create-funding-source")
	}
	if m.createFundingSourceErr != nil {
		return "", m.createFundingSourceErr
	}
	return m.fundingSourceURL, nil
}

func (m *mockPayments) CreateTransfer(_ context.Context, sourceURL, destinationURL string, amount decimal.Decimal, currency string) (string, error) {
	m.createTransferCalls++
	if m.recorder != nil {
		m.recorder.record("create-transfer")
	}
	m.lastSourceURL = sourceURL
	m.lastDestinationURL = destinationURL
	m.lastAmount = amount
	m.lastCurrency = currency
	if m.createTransferErr != nil {
		return "", m.createTransferErr
	}
	return m.transferURL, nil
}

// mockStore implements domain.UserStore.
type mockStore struct {
	recorder *callRecorder

	createUserCalls int
	createUserErr   error
	createdUser     *domain.User

	user           *domain.User
	getUserErr     error
	links          []domain.BankAccountLink
	listErr        error
	linkByAccount  *domain.BankAccountLink
	getLinkErr     error
	createLinkErr  error
	createdLink    *domain.BankAccountLink
	createLinkCall int
}

func (m *mockStore) CreateUser(_ context.Context, u domain.User) (*domain.User, error) {
	m.createUserCalls++
	if m.recorder != nil {
		m.recorder.record("create-user")
	}
	if m.createUserErr != nil {
		return nil, m.createUserErr
	}
	u.ID = "user-doc-1"
	m.createdUser = &u
	return &u, nil
}

func (m *mockStore) GetUserByAuthID(_ context.Context, _ string) (*domain.User, error) {
	if m.getUserErr != nil {
		return nil, m.getUserErr
	}
	return m.user, nil
}

func (m *mockStore) CreateBankLink(_ context.Context, l domain.BankAccountLink) (*domain.BankAccountLink, error) {
	m.createLinkCall++
	if m.recorder != nil {
		m.recorder.record("create-bank-link")
	}
	if m.createLinkErr != nil {
		return nil, m.createLinkErr
	}
	l.ID = "bank-doc-1"
	m.createdLink = &l
	return &l, nil
}

func (m *mockStore) ListBankLinks(_ context.Context, _ string) ([]domain.BankAccountLink, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.links, nil
}

func (m *mockStore) GetBankLinkByAccountID(_ context.Context, _ string) (*domain.BankAccountLink, error) {
	if m.getLinkErr != nil {
		return nil, m.getLinkErr
	}
	if m.linkByAccount == nil {
		return nil, domain.ErrBankLinkNotFound
	}
	return m.linkByAccount, nil
}

// mockAggregator implements domain.BankAggregator.
type mockAggregator struct {
	recorder *callRecorder

	linkToken    string
	linkTokenErr error

	exchangeCalls int
	exchangeErr   error
	exchange      *domain.TokenExchange

	getAccountsCalls int
	getAccountsErr   error
	accounts         []domain.BankAccount

	processorTokenCalls int
	processorTokenErr   error
	processorToken      string
}

func (m *mockAggregator) CreateLinkToken(_ context.Context, _, _ string) (string, error) {
	if m.recorder != nil {
		m.recorder.record("create-link-token")
	}
	if m.linkTokenErr != nil {
		return "", m.linkTokenErr
	}
	return m.linkToken, nil
}

func (m *mockAggregator) ExchangePublicToken(_ context.Context, _ string) (*domain.TokenExchange, error) {
	m.exchangeCalls++
	if m.recorder != nil {
		m.recorder.record("exchange-public-token")
	}
	if m.exchangeErr != nil {
		return nil, m.exchangeErr
	}
	return m.exchange, nil
}

func (m *mockAggregator) GetAccounts(_ context.Context, _ string) ([]domain.BankAccount, error) {
	m.getAccountsCalls++
	if m.recorder != nil {
		m.recorder.record("get-accounts")
	}
	if m.getAccountsErr != nil {
		return nil, m.getAccountsErr
	}
	return m.accounts, nil
}

func (m *mockAggregator) CreateProcessorToken(_ context.Context, _, _ string) (string, error) {
	m.processorTokenCalls++
	if m.recorder != nil {
		m.recorder.record("create-processor-token")
	}
	if m.processorTokenErr != nil {
		return "", m.processorTokenErr
	}
	return m.processorToken, nil
}
