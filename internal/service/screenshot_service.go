package service

import (
	"context"
	"strings"

	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/models"
)

// ScreenshotService 游戏截图业务服务
type ScreenshotService struct {
	manager *data.Manager
}

// NewScreenshotService 创建截图服务
func NewScreenshotService(m *data.Manager) *ScreenshotService {
	return &ScreenshotService{manager: m}
}

// ScreenshotInput 创建/更新截图输入
type ScreenshotInput struct {
	Image    string
	Caption  string
	Category string
}

// List 获取全部截图
func (s *ScreenshotService) List(ctx context.Context) ([]models.Screenshot, error) {
	screenshots := []models.Screenshot{}
	if _, err := s.manager.Load(ctx, data.CollectionScreenshots, &screenshots); err != nil {
		return nil, err
	}
	return screenshots, nil
}

// Create 创建截图
func (s *ScreenshotService) Create(ctx context.Context, input ScreenshotInput) (*models.Screenshot, error) {
	screenshot, err := buildScreenshot(input)
	if err != nil {
		return nil, err
	}
	record, err := data.ToRecord(screenshot)
	if err != nil {
		return nil, err
	}
	id, err := s.manager.AddItem(ctx, data.CollectionScreenshots, record)
	if err != nil {
		return nil, err
	}
	screenshot.ID = id
	return screenshot, nil
}

// Update 更新截图
func (s *ScreenshotService) Update(ctx context.Context, id string, input ScreenshotInput) (*models.Screenshot, error) {
	screenshot, err := buildScreenshot(input)
	if err != nil {
		return nil, err
	}
	patch, err := data.ToRecord(screenshot)
	if err != nil {
		return nil, err
	}
	found, err := s.manager.UpdateItem(ctx, data.CollectionScreenshots, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	screenshot.ID = id
	return screenshot, nil
}

// Delete 删除截图
func (s *ScreenshotService) Delete(ctx context.Context, id string) error {
	removed, err := s.manager.DeleteItem(ctx, data.CollectionScreenshots, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func buildScreenshot(input ScreenshotInput) (*models.Screenshot, error) {
	image := strings.TrimSpace(input.Image)
	caption := strings.TrimSpace(input.Caption)
	if image == "" {
		return nil, validationError("请填写截图图片")
	}
	if caption == "" {
		return nil, validationError("请填写截图说明")
	}
	return &models.Screenshot{
		Image:    image,
		Caption:  caption,
		Category: strings.TrimSpace(input.Category),
	}, nil
}
