package handler

import (
	"errors"
	"net/http"
	"strings"

	"vaultx-api/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a workflow error into the HTTP response the form
// frontend classifies on. Provider failures are distinguished by status code
// and provider error tag; nothing here retries.
func mapDomainError(err error) *echo.HTTPError {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body := echo.Map{"message": ve.Error()}
		if len(ve.Fields) > 0 {
			body["missingFields"] = ve.Fields
		}
		return echo.NewHTTPError(http.StatusBadRequest, body)
	}

	if pe, ok := domain.AsProviderError(err); ok {
		switch {
		case pe.Code == http.StatusTooManyRequests || strings.Contains(pe.Type, "rate_limit"):
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")

		case pe.Code == http.StatusUnauthorized && pe.Type == "user_session_already_exists":
			// A session already exists: the client should redirect to the
			// dashboard rather than show an error.
			return echo.NewHTTPError(http.StatusConflict, "session already active")

		case pe.Code == http.StatusUnauthorized:
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")

		default:
			return echo.NewHTTPError(http.StatusBadGateway, "provider request failed")
		}
	}

	var ce *domain.ConfigError
	if errors.As(err, &ce) {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal configuration error")
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrNoLinkedAccounts),
		errors.Is(err, domain.ErrBankLinkNotFound):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
