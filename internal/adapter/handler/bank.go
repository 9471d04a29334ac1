package handler

import (
	"net/http"

	"vaultx-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

// BankHandler serves the bank-linking endpoints used around the hosted
// linking UI, plus the dashboard bank list.
type BankHandler struct {
	current   *usecase.CurrentUser
	linkToken *usecase.CreateLinkToken
	link      *usecase.LinkAccount
	list      *usecase.ListBanks
}

// NewBankHandler creates the bank endpoint handler.
func NewBankHandler(current *usecase.CurrentUser, linkToken *usecase.CreateLinkToken, link *usecase.LinkAccount, list *usecase.ListBanks) *BankHandler {
	return &BankHandler{current: current, linkToken: linkToken, link: link, list: list}
}

type exchangeRequest struct {
	PublicToken string `json:"publicToken"`
}

// HandleCreateLinkToken issues a link token for the signed-in user.
func (h *BankHandler) HandleCreateLinkToken(c echo.Context) error {
	user, err := h.current.Execute(c.Request().Context(), sessionSecret(c))
	if err != nil {
		return mapDomainError(err)
	}

	token, err := h.linkToken.Execute(c.Request().Context(), user)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"linkToken": token})
}

// HandleExchange runs the account-linking workflow with the public token the
// linking UI handed back.
func (h *BankHandler) HandleExchange(c echo.Context) error {
	var in exchangeRequest
	if err := c.Bind(&in); err != nil || in.PublicToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "publicToken is required")
	}

	user, err := h.current.Execute(c.Request().Context(), sessionSecret(c))
	if err != nil {
		return mapDomainError(err)
	}

	link, err := h.link.Execute(c.Request().Context(), user, in.PublicToken)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Bank account linked successfully",
		"bank":    link,
	})
}

// HandleListBanks returns the signed-in user's linked banks.
func (h *BankHandler) HandleListBanks(c echo.Context) error {
	user, err := h.current.Execute(c.Request().Context(), sessionSecret(c))
	if err != nil {
		return mapDomainError(err)
	}

	links, err := h.list.Execute(c.Request().Context(), user.ID)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"banks": links})
}
