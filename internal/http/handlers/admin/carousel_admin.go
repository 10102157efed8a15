package admin

import (
	"github.com/aozora-fansite/internal/http/response"
	"github.com/aozora-fansite/internal/service"

	"github.com/gin-gonic/gin"
)

// CarouselUpsertRequest 轮播图创建/更新请求
type CarouselUpsertRequest struct {
	Image       string `json:"image" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func (r CarouselUpsertRequest) toInput() service.CarouselInput {
	return service.CarouselInput{
		Image:       r.Image,
		Title:       r.Title,
		Description: r.Description,
		Link:        r.Link,
	}
}

// GetAdminCarousels 获取后台轮播图列表
func (h *Handler) GetAdminCarousels(c *gin.Context) {
	slides, err := h.CarouselService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "轮播图获取失败", err)
		return
	}
	response.Success(c, slides)
}

// CreateCarousel 创建轮播图
func (h *Handler) CreateCarousel(c *gin.Context) {
	var req CarouselUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	slide, err := h.CarouselService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err, "轮播图创建失败")
		return
	}
	response.Success(c, slide)
}

// UpdateCarousel 更新轮播图
func (h *Handler) UpdateCarousel(c *gin.Context) {
	var req CarouselUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	slide, err := h.CarouselService.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "轮播图更新失败")
		return
	}
	response.Success(c, slide)
}

// DeleteCarousel 删除轮播图
func (h *Handler) DeleteCarousel(c *gin.Context) {
	if err := h.CarouselService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "轮播图删除失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
