package handler

import (
	"net/http"

	"vaultx-api/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransferHandler serves the payment-transfer endpoint.
type TransferHandler struct {
	current  *usecase.CurrentUser
	transfer *usecase.Transfer
}

// NewTransferHandler creates the transfer endpoint handler.
func NewTransferHandler(current *usecase.CurrentUser, transfer *usecase.Transfer) *TransferHandler {
	return &TransferHandler{current: current, transfer: transfer}
}

type transferRequest struct {
	SenderBankID string `json:"senderBankId"`
	ShareableID  string `json:"shareableId"`
	Amount       string `json:"amount"`
}

// HandleTransfer submits a transfer from one of the sender's banks to the
// funding source behind a shareable id.
func (h *TransferHandler) HandleTransfer(c echo.Context) error {
	var in transferRequest
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be a decimal string")
	}

	user, err := h.current.Execute(c.Request().Context(), sessionSecret(c))
	if err != nil {
		return mapDomainError(err)
	}

	transferURL, err := h.transfer.Execute(c.Request().Context(), user, usecase.TransferInput{
		SenderBankID:         in.SenderBankID,
		RecipientShareableID: in.ShareableID,
		Amount:               amount,
	})
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"transferUrl": transferURL})
}
