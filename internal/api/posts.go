package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/pkg/errors"
)

type postsResponse struct {
	Posts []domain.Post `json:"posts"`
	Next  *string       `json:"next"`
}

// listPosts proxies one page of media without touching session state.
func (h *Handler) listPosts(c *gin.Context) {
	page, err := h.client.ListMedia(c.Request.Context(), c.Query("next"))
	if err != nil {
		h.respondError(c, gatewayError(err, MsgFetchPostsFailed))
		return
	}

	resp := postsResponse{Posts: page.Posts}
	if resp.Posts == nil {
		resp.Posts = []domain.Post{}
	}
	if page.HasMore() {
		resp.Next = &page.Next
	}
	c.JSON(http.StatusOK, resp)
}

type viewPostResponse struct {
	Post     domain.Post      `json:"post"`
	Comments []domain.Comment `json:"comments"`
}

// viewPost looks the post up in the session feed first and falls back to the
// first page of media.
func (h *Handler) viewPost(c *gin.Context) {
	ctx := c.Request.Context()
	mediaID := c.Param("mediaId")

	post, ok := h.session(c).Feed.Lookup(mediaID)
	if !ok {
		page, err := h.client.ListMedia(ctx, "")
		if err != nil {
			h.respondError(c, gatewayError(err, MsgFetchPostsFailed))
			return
		}
		for _, p := range page.Posts {
			if p.ID == mediaID {
				post, ok = p, true
				break
			}
		}
	}
	if !ok {
		h.respondError(c, errors.NotFound(MsgPostNotFound))
		return
	}

	comments, err := h.client.GetComments(ctx, mediaID)
	if err != nil {
		h.respondError(c, gatewayError(err, MsgFetchCommentsFailed))
		return
	}

	c.JSON(http.StatusOK, viewPostResponse{Post: post, Comments: comments})
}
