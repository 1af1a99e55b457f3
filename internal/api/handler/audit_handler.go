package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-system/internal/core/domain"
	"github.com/accounthub/account-system/internal/core/ports"
)

// AuditHandler serves the authentication audit trail to staff accounts.
type AuditHandler struct {
	audit ports.AuditService
}

func NewAuditHandler(audit ports.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Recent returns the most recent auth events, newest first. The limit
// query parameter caps the result (default and maximum are enforced by
// the service).
func (h *AuditHandler) Recent(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []domain.AuthEvent{}
	}
	return c.JSON(http.StatusOK, events)
}
