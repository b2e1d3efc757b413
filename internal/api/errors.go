package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-dashboard/internal/instagram"
	"github.com/orgball2608/insta-dashboard/pkg/errors"
)

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeValidation:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeGateway:
		return http.StatusBadGateway
	case errors.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {error: message} with the status matching err's code.
// Errors without a code are reported with a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := errors.GetMessage(err)
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", "path", c.FullPath(), "status", status, "error", err)
	} else {
		h.log.Debug("Request rejected", "path", c.FullPath(), "status", status, "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// gatewayError keeps a classified error as is and turns anything else from
// the Instagram client into a gateway error. Instagram's own message wins
// over msg.
func gatewayError(err error, msg string) error {
	if errors.GetCode(err) != "" {
		return err
	}
	if upstream, ok := instagram.UpstreamMessage(err); ok {
		msg = upstream
	}
	return errors.Gateway(msg, err)
}
