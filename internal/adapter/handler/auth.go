package handler

import (
	"net/http"

	"vaultx-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves the sign-up, sign-in, logout and current-user
// endpoints. Session credentials travel in the session cookie; handlers pass
// them into usecases explicitly.
type AuthHandler struct {
	signUp  *usecase.SignUp
	signIn  *usecase.SignIn
	current *usecase.CurrentUser
	logout  *usecase.Logout
}

// NewAuthHandler creates the auth endpoint handler.
func NewAuthHandler(signUp *usecase.SignUp, signIn *usecase.SignIn, current *usecase.CurrentUser, logout *usecase.Logout) *AuthHandler {
	return &AuthHandler{signUp: signUp, signIn: signIn, current: current, logout: logout}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleSignUp processes the create-account form.
func (h *AuthHandler) HandleSignUp(c echo.Context) error {
	var in usecase.OnboardingInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	user, session, err := h.signUp.Execute(c.Request().Context(), in)
	if err != nil {
		return mapDomainError(err)
	}

	setSessionCookie(c, session)
	return c.JSON(http.StatusCreated, user)
}

// HandleSignIn processes the authenticate form. An already valid session
// cookie short-circuits credential verification.
func (h *AuthHandler) HandleSignIn(c echo.Context) error {
	var in signInRequest
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	identity, session, err := h.signIn.Execute(c.Request().Context(), sessionSecret(c), in.Email, in.Password)
	if err != nil {
		return mapDomainError(err)
	}

	if session != nil {
		setSessionCookie(c, session)
	}
	return c.JSON(http.StatusOK, identityResponse{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
	})
}

// HandleLogout deletes the session, best effort, and always answers with a
// null body.
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	h.logout.Execute(c.Request().Context(), sessionSecret(c))
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, nil)
}

// HandleMe returns the signed-in user's persisted record.
func (h *AuthHandler) HandleMe(c echo.Context) error {
	user, err := h.current.Execute(c.Request().Context(), sessionSecret(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, user)
}
