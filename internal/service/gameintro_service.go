package service

import (
	"context"
	"strings"
	"time"

	"github.com/aozora-fansite/internal/cache"
	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/models"
)

const gameIntroCacheKey = "content:gameIntro"

const contentCacheTTL = 10 * time.Minute

// GameIntroService 游戏介绍业务服务（单例集合）
type GameIntroService struct {
	manager *data.Manager
}

// NewGameIntroService 创建游戏介绍服务
func NewGameIntroService(m *data.Manager) *GameIntroService {
	return &GameIntroService{manager: m}
}

// FeatureInput 游戏特色输入
type FeatureInput struct {
	ID          string
	Icon        string
	Title       string
	Description string
}

// GameIntroInput 更新游戏介绍输入
type GameIntroInput struct {
	Title       string
	Description string
	Features    []FeatureInput
}

// Get 获取游戏介绍，存储缺失时返回默认内容
func (s *GameIntroService) Get(ctx context.Context) (*models.GameIntro, error) {
	intro := models.GameIntro{}
	if hit, err := cache.GetJSON(ctx, gameIntroCacheKey, &intro); err == nil && hit {
		return &intro, nil
	}
	found, err := s.manager.Load(ctx, data.CollectionGameIntro, &intro)
	if err != nil {
		return nil, err
	}
	if !found {
		intro = models.GameIntro{
			Title:       "青空之恋",
			Description: "一款充满青春气息的校园恋爱视觉小说",
		}
	}
	if intro.Features == nil {
		intro.Features = []models.Feature{}
	}
	if err := cache.SetJSON(ctx, gameIntroCacheKey, &intro, contentCacheTTL); err != nil {
		logger.Warnw("game_intro_cache_set_failed", "error", err)
	}
	return &intro, nil
}

// Update 整体替换游戏介绍，未带 ID 的特色条目会分配新 ID
func (s *GameIntroService) Update(ctx context.Context, input GameIntroInput) (*models.GameIntro, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" {
		return nil, validationError("请填写游戏标题")
	}
	if description == "" {
		return nil, validationError("请填写游戏介绍")
	}

	features := make([]models.Feature, 0, len(input.Features))
	for _, f := range input.Features {
		featureTitle := strings.TrimSpace(f.Title)
		if featureTitle == "" {
			return nil, validationError("请填写特色标题")
		}
		id := strings.TrimSpace(f.ID)
		if id == "" {
			id = data.GenerateID()
		}
		features = append(features, models.Feature{
			ID:          id,
			Icon:        strings.TrimSpace(f.Icon),
			Title:       featureTitle,
			Description: strings.TrimSpace(f.Description),
		})
	}

	intro := &models.GameIntro{
		Title:       title,
		Description: description,
		Features:    features,
	}
	if err := s.manager.Put(ctx, data.CollectionGameIntro, intro); err != nil {
		return nil, err
	}
	return intro, nil
}
