package feed

import (
	"strconv"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedHandler 处理信息流请求
type FeedHandler struct {
	feedService service.FeedServiceInterface
}

func NewFeedHandler(feedService service.FeedServiceInterface) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// GetFeed 返回当前用户的信息流。页码不合法时回退到第一页。
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := c.GetInt("user_id")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	posts, total, err := h.feedService.GetFeed(userID, page)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
		"total": total,
		"page":  page,
	}, "")
}
