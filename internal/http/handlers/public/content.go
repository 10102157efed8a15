package public

import (
	"github.com/aozora-fansite/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCarousels 获取首页轮播图列表
func (h *Handler) GetCarousels(c *gin.Context) {
	slides, err := h.CarouselService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "轮播图获取失败", err)
		return
	}
	response.Success(c, slides)
}

// GetGameIntro 获取游戏介绍
func (h *Handler) GetGameIntro(c *gin.Context) {
	intro, err := h.GameIntroService.Get(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "游戏介绍获取失败", err)
		return
	}
	response.Success(c, intro)
}

// GetCharacters 获取角色列表
func (h *Handler) GetCharacters(c *gin.Context) {
	characters, err := h.CharacterService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "角色列表获取失败", err)
		return
	}
	response.Success(c, characters)
}

// GetCharacter 获取角色详情
func (h *Handler) GetCharacter(c *gin.Context) {
	character, err := h.CharacterService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "角色获取失败")
		return
	}
	response.Success(c, character)
}

// GetScreenshots 获取游戏截图列表
func (h *Handler) GetScreenshots(c *gin.Context) {
	screenshots, err := h.ScreenshotService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "截图列表获取失败", err)
		return
	}
	response.Success(c, screenshots)
}

// GetAnnouncements 获取公告列表，按日期降序
func (h *Handler) GetAnnouncements(c *gin.Context) {
	announcements, err := h.AnnouncementService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "公告列表获取失败", err)
		return
	}
	response.Success(c, announcements)
}

// GetAnnouncement 获取公告详情
func (h *Handler) GetAnnouncement(c *gin.Context) {
	announcement, err := h.AnnouncementService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "公告获取失败")
		return
	}
	response.Success(c, announcement)
}

// GetSiteSettings 获取站点设置
func (h *Handler) GetSiteSettings(c *gin.Context) {
	settings, err := h.SiteSettingsService.Get(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "站点设置获取失败", err)
		return
	}
	response.Success(c, settings)
}
