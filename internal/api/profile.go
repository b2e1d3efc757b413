package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) profile(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, gatewayError(err, MsgFetchProfileFailed))
		return
	}
	c.JSON(http.StatusOK, p)
}
