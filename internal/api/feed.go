package api

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/internal/feed"
)

type feedResponse struct {
	Posts   []domain.Post `json:"posts"`
	HasMore bool          `json:"has_more"`
	Loading bool          `json:"loading"`
}

// feed returns the session's accumulated posts narrowed by media_type and q.
func (h *Handler) feed(c *gin.Context) {
	mediaType, err := feed.ParseMediaFilter(c.Query("media_type"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	criteria := feed.Criteria{MediaType: mediaType, Query: c.Query("q")}

	snap := h.session(c).Feed.Snapshot()
	posts := slices.Collect(feed.Visible(snap.Posts, criteria))
	if posts == nil {
		posts = []domain.Post{}
	}

	c.JSON(http.StatusOK, feedResponse{
		Posts:   posts,
		HasMore: snap.HasMore,
		Loading: snap.Loading,
	})
}

func (h *Handler) loadFeed(c *gin.Context) {
	res, err := h.session(c).Feed.LoadNext(c.Request.Context())
	h.metrics.FeedLoad(string(res.Status), res.Added)
	if err != nil {
		h.respondError(c, gatewayError(err, MsgFetchPostsFailed))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) refreshFeed(c *gin.Context) {
	res, err := h.session(c).Feed.Refresh(c.Request.Context())
	h.metrics.FeedLoad(string(res.Status), res.Added)
	if err != nil {
		h.respondError(c, gatewayError(err, MsgFetchPostsFailed))
		return
	}
	c.JSON(http.StatusOK, res)
}
