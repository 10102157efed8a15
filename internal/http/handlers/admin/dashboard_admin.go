package admin

import (
	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/http/response"
	"github.com/aozora-fansite/internal/models"

	"github.com/gin-gonic/gin"
)

// GetDashboard 后台概览，返回各内容集合的条目数
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	counts := gin.H{}

	carousels := []models.CarouselSlide{}
	if _, err := h.DataManager.Load(ctx, data.CollectionCarousels, &carousels); err != nil {
		respondError(c, response.CodeInternal, "概览数据获取失败", err)
		return
	}
	counts["carousels"] = len(carousels)

	characters := []models.Character{}
	if _, err := h.DataManager.Load(ctx, data.CollectionCharacters, &characters); err != nil {
		respondError(c, response.CodeInternal, "概览数据获取失败", err)
		return
	}
	counts["characters"] = len(characters)

	screenshots := []models.Screenshot{}
	if _, err := h.DataManager.Load(ctx, data.CollectionScreenshots, &screenshots); err != nil {
		respondError(c, response.CodeInternal, "概览数据获取失败", err)
		return
	}
	counts["screenshots"] = len(screenshots)

	announcements := []models.Announcement{}
	if _, err := h.DataManager.Load(ctx, data.CollectionAnnouncements, &announcements); err != nil {
		respondError(c, response.CodeInternal, "概览数据获取失败", err)
		return
	}
	counts["announcements"] = len(announcements)

	users := []models.User{}
	if _, err := h.DataManager.Load(ctx, data.CollectionUsers, &users); err != nil {
		respondError(c, response.CodeInternal, "概览数据获取失败", err)
		return
	}
	counts["users"] = len(users)

	comments := []models.Comment{}
	if _, err := h.DataManager.Load(ctx, data.CollectionComments, &comments); err != nil {
		respondError(c, response.CodeInternal, "概览数据获取失败", err)
		return
	}
	replyCount := 0
	for i := range comments {
		replyCount += len(comments[i].Replies)
	}
	counts["comments"] = len(comments)
	counts["replies"] = replyCount

	likes := []models.Like{}
	if _, err := h.DataManager.Load(ctx, data.CollectionLikes, &likes); err != nil {
		respondError(c, response.CodeInternal, "概览数据获取失败", err)
		return
	}
	counts["likes"] = len(likes)

	response.Success(c, counts)
}
