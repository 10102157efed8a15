package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/models"
)

// AnnouncementService 公告业务服务
type AnnouncementService struct {
	manager *data.Manager
}

// NewAnnouncementService 创建公告服务
func NewAnnouncementService(m *data.Manager) *AnnouncementService {
	return &AnnouncementService{manager: m}
}

// AnnouncementInput 创建/更新公告输入
type AnnouncementInput struct {
	Title     string
	Content   string
	Date      string
	Important bool
}

// List 获取全部公告，按日期降序排列；日期相同保持原有顺序
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	announcements := []models.Announcement{}
	if _, err := s.manager.Load(ctx, data.CollectionAnnouncements, &announcements); err != nil {
		return nil, err
	}
	sort.SliceStable(announcements, func(i, j int) bool {
		return announcements[i].Date > announcements[j].Date
	})
	return announcements, nil
}

// GetByID 根据 ID 获取公告
func (s *AnnouncementService) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	announcements := []models.Announcement{}
	if _, err := s.manager.Load(ctx, data.CollectionAnnouncements, &announcements); err != nil {
		return nil, err
	}
	for i := range announcements {
		if announcements[i].ID == id {
			return &announcements[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create 创建公告
func (s *AnnouncementService) Create(ctx context.Context, input AnnouncementInput) (*models.Announcement, error) {
	announcement, err := buildAnnouncement(input)
	if err != nil {
		return nil, err
	}
	record, err := data.ToRecord(announcement)
	if err != nil {
		return nil, err
	}
	id, err := s.manager.AddItem(ctx, data.CollectionAnnouncements, record)
	if err != nil {
		return nil, err
	}
	announcement.ID = id
	return announcement, nil
}

// Update 更新公告
func (s *AnnouncementService) Update(ctx context.Context, id string, input AnnouncementInput) (*models.Announcement, error) {
	announcement, err := buildAnnouncement(input)
	if err != nil {
		return nil, err
	}
	patch, err := data.ToRecord(announcement)
	if err != nil {
		return nil, err
	}
	found, err := s.manager.UpdateItem(ctx, data.CollectionAnnouncements, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	announcement.ID = id
	return announcement, nil
}

// Delete 删除公告
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	removed, err := s.manager.DeleteItem(ctx, data.CollectionAnnouncements, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func buildAnnouncement(input AnnouncementInput) (*models.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, validationError("请填写公告标题")
	}
	if content == "" {
		return nil, validationError("请填写公告内容")
	}
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	return &models.Announcement{
		Title:     title,
		Content:   content,
		Date:      date,
		Important: input.Important,
	}, nil
}
