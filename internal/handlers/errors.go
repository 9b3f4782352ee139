package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/fieldservice-availability/internal/httperr"
	"github.com/BruksfildServices01/fieldservice-availability/internal/infra/salesforce"
)

// writeError maps use-case and CRM errors onto the JSON error envelope.
func writeError(c *gin.Context, err error) {
	if code, ok := httperr.AsBusiness(err); ok {
		httperr.BadRequest(c, code, "Invalid request.")
		return
	}

	switch {
	case salesforce.IsNotFound(err):
		httperr.NotFound(c, "not_found", "Record not found.")
	case errors.Is(err, salesforce.ErrInvalidPrivateKey):
		httperr.Internal(c, "crm_misconfigured", "CRM credentials are not configured correctly.")
	case errors.Is(err, salesforce.ErrTokenExhausted):
		httperr.BadGateway(c, "crm_auth_failed", "Unable to authenticate with the CRM.")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		httperr.GatewayTimeout(c, "crm_timeout", "The CRM did not respond in time.")
	default:
		httperr.BadGateway(c, "crm_request_failed", "The CRM request failed.")
	}
}
