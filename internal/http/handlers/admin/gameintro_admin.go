package admin

import (
	"github.com/aozora-fansite/internal/http/response"
	"github.com/aozora-fansite/internal/service"

	"github.com/gin-gonic/gin"
)

// GameIntroFeatureRequest 游戏特色条目
type GameIntroFeatureRequest struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// GameIntroUpdateRequest 游戏介绍更新请求
type GameIntroUpdateRequest struct {
	Title       string                    `json:"title" binding:"required"`
	Description string                    `json:"description" binding:"required"`
	Features    []GameIntroFeatureRequest `json:"features"`
}

// GetAdminGameIntro 获取后台游戏介绍
func (h *Handler) GetAdminGameIntro(c *gin.Context) {
	intro, err := h.GameIntroService.Get(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "游戏介绍获取失败", err)
		return
	}
	response.Success(c, intro)
}

// UpdateGameIntro 整体替换游戏介绍
func (h *Handler) UpdateGameIntro(c *gin.Context) {
	var req GameIntroUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	features := make([]service.FeatureInput, 0, len(req.Features))
	for _, f := range req.Features {
		features = append(features, service.FeatureInput{
			ID:          f.ID,
			Icon:        f.Icon,
			Title:       f.Title,
			Description: f.Description,
		})
	}

	intro, err := h.GameIntroService.Update(c.Request.Context(), service.GameIntroInput{
		Title:       req.Title,
		Description: req.Description,
		Features:    features,
	})
	if err != nil {
		respondServiceError(c, err, "游戏介绍更新失败")
		return
	}
	response.Success(c, intro)
}
