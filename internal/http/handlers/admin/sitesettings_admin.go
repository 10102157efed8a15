package admin

import (
	"github.com/aozora-fansite/internal/http/response"
	"github.com/aozora-fansite/internal/models"
	"github.com/aozora-fansite/internal/service"

	"github.com/gin-gonic/gin"
)

// SiteSettingsUpdateRequest 站点设置更新请求
type SiteSettingsUpdateRequest struct {
	SiteName     string             `json:"siteName" binding:"required"`
	Logo         string             `json:"logo"`
	ContactEmail string             `json:"contactEmail"`
	SocialLinks  models.SocialLinks `json:"socialLinks"`
	Copyright    string             `json:"copyright"`
}

// GetAdminSiteSettings 获取后台站点设置
func (h *Handler) GetAdminSiteSettings(c *gin.Context) {
	settings, err := h.SiteSettingsService.Get(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "站点设置获取失败", err)
		return
	}
	response.Success(c, settings)
}

// UpdateSiteSettings 整体替换站点设置
func (h *Handler) UpdateSiteSettings(c *gin.Context) {
	var req SiteSettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	settings, err := h.SiteSettingsService.Update(c.Request.Context(), service.SiteSettingsInput{
		SiteName:     req.SiteName,
		Logo:         req.Logo,
		ContactEmail: req.ContactEmail,
		SocialLinks:  req.SocialLinks,
		Copyright:    req.Copyright,
	})
	if err != nil {
		respondServiceError(c, err, "站点设置更新失败")
		return
	}
	response.Success(c, settings)
}
