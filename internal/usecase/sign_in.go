package usecase

import (
	"context"
	"log/slog"

	"vaultx-api/internal/domain"
)

// SignIn authenticates a user against the identity provider. An already
// valid session short-circuits credential verification so a signed-in user
// never accumulates duplicate sessions.
type SignIn struct {
	identity domain.IdentityProvider
	logger   *slog.Logger
}

// NewSignIn creates the sign-in workflow.
func NewSignIn(identity domain.IdentityProvider, logger *slog.Logger) *SignIn {
	return &SignIn{identity: identity, logger: logger}
}

// Execute signs a user in. sessionSecret is the credential from the request
// cookie, empty when absent. When the existing session still resolves, the
// identity is returned with a nil session and no new session is created;
// otherwise a fresh session is issued for the caller to set as a cookie.
func (uc *SignIn) Execute(ctx context.Context, sessionSecret, email, password string) (*domain.Identity, *domain.Session, error) {
	if sessionSecret != "" {
		identity, err := uc.identity.CurrentIdentity(ctx, sessionSecret)
		if err == nil {
			uc.logger.InfoContext(ctx, "sign-in short-circuited by existing session", "account_id", identity.ID)
			return identity, nil, nil
		}
		// Stale or rejected cookie: fall through to credential login.
	}

	session, err := uc.identity.CreateEmailSession(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	identity, err := uc.identity.CurrentIdentity(ctx, session.Secret)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.InfoContext(ctx, "sign-in completed", "account_id", identity.ID)
	return identity, session, nil
}

// CurrentUser resolves the signed-in user for a session credential,
// combining the provider identity with the persisted application record.
type CurrentUser struct {
	identity domain.IdentityProvider
	store    domain.UserStore
}

// NewCurrentUser creates the current-user lookup.
func NewCurrentUser(identity domain.IdentityProvider, store domain.UserStore) *CurrentUser {
	return &CurrentUser{identity: identity, store: store}
}

// Execute returns the user owning sessionSecret, or ErrSessionNotFound when
// the credential is absent or rejected by the provider.
func (uc *CurrentUser) Execute(ctx context.Context, sessionSecret string) (*domain.User, error) {
	if sessionSecret == "" {
		return nil, domain.ErrSessionNotFound
	}

	identity, err := uc.identity.CurrentIdentity(ctx, sessionSecret)
	if err != nil {
		return nil, err
	}

	return uc.store.GetUserByAuthID(ctx, identity.ID)
}

// Logout invalidates a session, best effort. Provider failures are
// swallowed: the cookie is gone client-side either way and surfacing the
// error gives the user nothing actionable.
type Logout struct {
	identity domain.IdentityProvider
	logger   *slog.Logger
}

// NewLogout creates the logout workflow.
func NewLogout(identity domain.IdentityProvider, logger *slog.Logger) *Logout {
	return &Logout{identity: identity, logger: logger}
}

// Execute asks the provider to delete the session. It never returns an
// error.
func (uc *Logout) Execute(ctx context.Context, sessionSecret string) {
	if sessionSecret == "" {
		return
	}
	if err := uc.identity.DeleteSession(ctx, sessionSecret); err != nil {
		uc.logger.WarnContext(ctx, "session delete failed during logout", "error", err)
	}
}
