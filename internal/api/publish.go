package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/pkg/errors"
)

type publishResponse struct {
	Success bool   `json:"success"`
	MediaID string `json:"mediaId"`
}

func (h *Handler) publish(c *gin.Context) {
	var draft domain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.respondError(c, errors.WrapWithCode(errors.Join(errors.ErrInvalidInput, err), errors.CodeValidation, MsgInvalidBody))
		return
	}

	res, err := h.publisher.Publish(c.Request.Context(), draft)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, publishResponse{Success: true, MediaID: res.MediaID})
}
