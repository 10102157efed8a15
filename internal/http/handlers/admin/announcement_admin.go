package admin

import (
	"github.com/aozora-fansite/internal/http/response"
	"github.com/aozora-fansite/internal/service"

	"github.com/gin-gonic/gin"
)

// AnnouncementUpsertRequest 公告创建/更新请求
type AnnouncementUpsertRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Date      string `json:"date"`
	Important bool   `json:"important"`
}

func (r AnnouncementUpsertRequest) toInput() service.AnnouncementInput {
	return service.AnnouncementInput{
		Title:     r.Title,
		Content:   r.Content,
		Date:      r.Date,
		Important: r.Important,
	}
}

// GetAdminAnnouncements 获取后台公告列表
func (h *Handler) GetAdminAnnouncements(c *gin.Context) {
	announcements, err := h.AnnouncementService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "公告列表获取失败", err)
		return
	}
	response.Success(c, announcements)
}

// CreateAnnouncement 创建公告
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req AnnouncementUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	announcement, err := h.AnnouncementService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err, "公告创建失败")
		return
	}
	response.Success(c, announcement)
}

// UpdateAnnouncement 更新公告
func (h *Handler) UpdateAnnouncement(c *gin.Context) {
	var req AnnouncementUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	announcement, err := h.AnnouncementService.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "公告更新失败")
		return
	}
	response.Success(c, announcement)
}

// DeleteAnnouncement 删除公告
func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	if err := h.AnnouncementService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "公告删除失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
