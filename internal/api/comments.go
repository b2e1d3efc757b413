package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-dashboard/internal/domain"
)

func (h *Handler) listComments(c *gin.Context) {
	comments, err := h.client.GetComments(c.Request.Context(), c.Param("mediaId"))
	if err != nil {
		h.respondError(c, gatewayError(err, MsgFetchCommentsFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type toggleResponse struct {
	MediaID  string           `json:"media_id"`
	State    string           `json:"state"`
	Visible  bool             `json:"visible"`
	Comments []domain.Comment `json:"comments"`
}

// toggleComments opens or closes the comment thread of a post in the
// caller's session.
func (h *Handler) toggleComments(c *gin.Context) {
	mediaID := c.Param("mediaId")

	entry, err := h.session(c).Comments.Toggle(c.Request.Context(), mediaID)
	h.metrics.CommentToggle(entry.State.String())
	if err != nil {
		h.respondError(c, gatewayError(err, MsgFetchCommentsFailed))
		return
	}

	comments := entry.Comments
	if comments == nil {
		comments = []domain.Comment{}
	}
	c.JSON(http.StatusOK, toggleResponse{
		MediaID:  mediaID,
		State:    entry.State.String(),
		Visible:  entry.Visible(),
		Comments: comments,
	})
}
