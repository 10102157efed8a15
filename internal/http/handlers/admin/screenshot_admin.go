package admin

import (
	"github.com/aozora-fansite/internal/http/response"
	"github.com/aozora-fansite/internal/service"

	"github.com/gin-gonic/gin"
)

// ScreenshotUpsertRequest 截图创建/更新请求
type ScreenshotUpsertRequest struct {
	Image    string `json:"image" binding:"required"`
	Caption  string `json:"caption" binding:"required"`
	Category string `json:"category"`
}

func (r ScreenshotUpsertRequest) toInput() service.ScreenshotInput {
	return service.ScreenshotInput{
		Image:    r.Image,
		Caption:  r.Caption,
		Category: r.Category,
	}
}

// GetAdminScreenshots 获取后台截图列表
func (h *Handler) GetAdminScreenshots(c *gin.Context) {
	screenshots, err := h.ScreenshotService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "截图列表获取失败", err)
		return
	}
	response.Success(c, screenshots)
}

// CreateScreenshot 创建截图
func (h *Handler) CreateScreenshot(c *gin.Context) {
	var req ScreenshotUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	screenshot, err := h.ScreenshotService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err, "截图创建失败")
		return
	}
	response.Success(c, screenshot)
}

// UpdateScreenshot 更新截图
func (h *Handler) UpdateScreenshot(c *gin.Context) {
	var req ScreenshotUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	screenshot, err := h.ScreenshotService.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "截图更新失败")
		return
	}
	response.Success(c, screenshot)
}

// DeleteScreenshot 删除截图
func (h *Handler) DeleteScreenshot(c *gin.Context) {
	if err := h.ScreenshotService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "截图删除失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
