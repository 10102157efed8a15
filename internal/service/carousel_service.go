package service

import (
	"context"
	"strings"

	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/models"
)

// CarouselService 轮播图业务服务
type CarouselService struct {
	manager *data.Manager
}

// NewCarouselService 创建轮播图服务
func NewCarouselService(m *data.Manager) *CarouselService {
	return &CarouselService{manager: m}
}

// CarouselInput 创建/更新轮播图输入
type CarouselInput struct {
	Image       string
	Title       string
	Description string
	Link        string
}

// List 获取全部轮播图
func (s *CarouselService) List(ctx context.Context) ([]models.CarouselSlide, error) {
	slides := []models.CarouselSlide{}
	if _, err := s.manager.Load(ctx, data.CollectionCarousels, &slides); err != nil {
		return nil, err
	}
	return slides, nil
}

// GetByID 根据 ID 获取轮播图
func (s *CarouselService) GetByID(ctx context.Context, id string) (*models.CarouselSlide, error) {
	slides, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range slides {
		if slides[i].ID == id {
			return &slides[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create 创建轮播图
func (s *CarouselService) Create(ctx context.Context, input CarouselInput) (*models.CarouselSlide, error) {
	slide, err := buildCarouselSlide(input)
	if err != nil {
		return nil, err
	}
	record, err := data.ToRecord(slide)
	if err != nil {
		return nil, err
	}
	id, err := s.manager.AddItem(ctx, data.CollectionCarousels, record)
	if err != nil {
		return nil, err
	}
	slide.ID = id
	return slide, nil
}

// Update 更新轮播图
func (s *CarouselService) Update(ctx context.Context, id string, input CarouselInput) (*models.CarouselSlide, error) {
	slide, err := buildCarouselSlide(input)
	if err != nil {
		return nil, err
	}
	patch, err := data.ToRecord(slide)
	if err != nil {
		return nil, err
	}
	found, err := s.manager.UpdateItem(ctx, data.CollectionCarousels, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	slide.ID = id
	return slide, nil
}

// Delete 删除轮播图
func (s *CarouselService) Delete(ctx context.Context, id string) error {
	removed, err := s.manager.DeleteItem(ctx, data.CollectionCarousels, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func buildCarouselSlide(input CarouselInput) (*models.CarouselSlide, error) {
	image := strings.TrimSpace(input.Image)
	title := strings.TrimSpace(input.Title)
	if image == "" {
		return nil, validationError("请填写轮播图图片")
	}
	if title == "" {
		return nil, validationError("请填写轮播图标题")
	}
	return &models.CarouselSlide{
		Image:       image,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Link:        strings.TrimSpace(input.Link),
	}, nil
}
