package service

import (
	"context"
	"strings"

	"github.com/aozora-fansite/internal/cache"
	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/models"
)

const siteSettingsCacheKey = "content:siteSettings"

// SiteSettingsService 站点设置业务服务（单例集合）
type SiteSettingsService struct {
	manager *data.Manager
}

// NewSiteSettingsService 创建站点设置服务
func NewSiteSettingsService(m *data.Manager) *SiteSettingsService {
	return &SiteSettingsService{manager: m}
}

// SiteSettingsInput 更新站点设置输入
type SiteSettingsInput struct {
	SiteName     string
	Logo         string
	ContactEmail string
	SocialLinks  models.SocialLinks
	Copyright    string
}

// Get 获取站点设置，存储缺失时返回默认内容
func (s *SiteSettingsService) Get(ctx context.Context) (*models.SiteSettings, error) {
	settings := models.SiteSettings{}
	if hit, err := cache.GetJSON(ctx, siteSettingsCacheKey, &settings); err == nil && hit {
		return &settings, nil
	}
	found, err := s.manager.Load(ctx, data.CollectionSiteSettings, &settings)
	if err != nil {
		return nil, err
	}
	if !found {
		settings = models.SiteSettings{
			SiteName:  "青空之恋",
			Copyright: "© 2023 青空之恋 版权所有",
		}
	}
	if err := cache.SetJSON(ctx, siteSettingsCacheKey, &settings, contentCacheTTL); err != nil {
		logger.Warnw("site_settings_cache_set_failed", "error", err)
	}
	return &settings, nil
}

// Update 整体替换站点设置
func (s *SiteSettingsService) Update(ctx context.Context, input SiteSettingsInput) (*models.SiteSettings, error) {
	siteName := strings.TrimSpace(input.SiteName)
	if siteName == "" {
		return nil, validationError("请填写站点名称")
	}
	settings := &models.SiteSettings{
		SiteName:     siteName,
		Logo:         strings.TrimSpace(input.Logo),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		SocialLinks: models.SocialLinks{
			Weibo:  strings.TrimSpace(input.SocialLinks.Weibo),
			Wechat: strings.TrimSpace(input.SocialLinks.Wechat),
			QQ:     strings.TrimSpace(input.SocialLinks.QQ),
		},
		Copyright: strings.TrimSpace(input.Copyright),
	}
	if err := s.manager.Put(ctx, data.CollectionSiteSettings, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
