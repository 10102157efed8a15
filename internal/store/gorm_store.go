package store

import (
	"context"
	"errors"

	"github.com/aozora-fansite/internal/models"

	"gorm.io/gorm"
)

// GormStore 基于 entries 表的键值存储实现
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建数据库存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get 读取键值
func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.Entry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set 写入键值（存在则覆盖）
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	var entry models.Entry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.db.WithContext(ctx).Create(&models.Entry{Key: key, Value: value}).Error
		}
		return err
	}
	entry.Value = value
	return s.db.WithContext(ctx).Save(&entry).Error
}

// Delete 删除键
func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Entry{}).Error
}
