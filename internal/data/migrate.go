package data

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/models"
)

const migratedFlagKey = "dataMigrated"

// 旧版扁平键
const (
	legacyCarouselKey     = "carouselData"
	legacyCharacterKey    = "characterData"
	legacyScreenshotKey   = "screenshotData"
	legacyAnnouncementKey = "announcementData"
	legacyGameIntroKey    = "gameIntroData"
)

// Migrate 一次性迁移旧版扁平键数据到按集合存储的新格式。
// 迁移完成后写入标记键，重复调用直接返回。损坏的旧数据跳过并告警。
func (m *Manager) Migrate(ctx context.Context) error {
	flag, found, err := m.store.Get(ctx, migratedFlagKey)
	if err != nil {
		return err
	}
	if found && flag == "true" {
		return nil
	}

	m.migrateLegacyList(ctx, legacyCarouselKey, CollectionCarousels, func(item Record) interface{} {
		return models.CarouselSlide{
			ID:          GenerateID(),
			Image:       stringField(item, "image"),
			Title:       stringField(item, "title"),
			Description: stringField(item, "description"),
			Link:        stringField(item, "link"),
		}
	})

	m.migrateLegacyList(ctx, legacyCharacterKey, CollectionCharacters, func(item Record) interface{} {
		return models.Character{
			ID:          GenerateID(),
			Name:        stringField(item, "name"),
			Avatar:      stringField(item, "avatar"),
			Description: stringField(item, "description"),
			Personality: stringField(item, "personality"),
			Background:  stringField(item, "background"),
		}
	})

	m.migrateLegacyList(ctx, legacyScreenshotKey, CollectionScreenshots, func(item Record) interface{} {
		return models.Screenshot{
			ID:       GenerateID(),
			Image:    stringField(item, "image"),
			Caption:  stringField(item, "caption"),
			Category: stringField(item, "category"),
		}
	})

	m.migrateLegacyList(ctx, legacyAnnouncementKey, CollectionAnnouncements, func(item Record) interface{} {
		date := stringField(item, "date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		important, _ := item["important"].(bool)
		return models.Announcement{
			ID:        GenerateID(),
			Title:     stringField(item, "title"),
			Content:   stringField(item, "content"),
			Date:      date,
			Important: important,
		}
	})

	m.migrateLegacyGameIntro(ctx)

	if err := m.store.Set(ctx, migratedFlagKey, "true"); err != nil {
		return err
	}
	return nil
}

func (m *Manager) migrateLegacyList(ctx context.Context, legacyKey, collection string, mapItem func(Record) interface{}) {
	raw, found, err := m.store.Get(ctx, legacyKey)
	if err != nil {
		logger.Warnw("migrate_legacy_read_failed", "key", legacyKey, "error", err)
		return
	}
	if !found {
		return
	}
	var items []Record
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warnw("migrate_legacy_parse_failed", "key", legacyKey, "error", err)
		return
	}
	mapped := make([]interface{}, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, mapItem(item))
	}
	if err := m.put(ctx, collection, mapped); err != nil {
		logger.Warnw("migrate_legacy_write_failed", "key", legacyKey, "collection", collection, "error", err)
		return
	}
	logger.Infow("migrate_legacy_done", "key", legacyKey, "collection", collection, "count", len(mapped))
}

func (m *Manager) migrateLegacyGameIntro(ctx context.Context) {
	raw, found, err := m.store.Get(ctx, legacyGameIntroKey)
	if err != nil {
		logger.Warnw("migrate_legacy_read_failed", "key", legacyGameIntroKey, "error", err)
		return
	}
	if !found {
		return
	}
	var old struct {
		Title       string           `json:"title"`
		Description string           `json:"description"`
		Features    []models.Feature `json:"features"`
	}
	if err := json.Unmarshal([]byte(raw), &old); err != nil {
		logger.Warnw("migrate_legacy_parse_failed", "key", legacyGameIntroKey, "error", err)
		return
	}
	intro := models.GameIntro{
		Title:       old.Title,
		Description: old.Description,
		Features:    old.Features,
	}
	if intro.Title == "" {
		intro.Title = "青空之恋"
	}
	if intro.Description == "" {
		intro.Description = "一款充满青春气息的校园恋爱视觉小说"
	}
	if intro.Features == nil {
		intro.Features = []models.Feature{}
	}
	if err := m.put(ctx, CollectionGameIntro, intro); err != nil {
		logger.Warnw("migrate_legacy_write_failed", "key", legacyGameIntroKey, "collection", CollectionGameIntro, "error", err)
		return
	}
	logger.Infow("migrate_legacy_done", "key", legacyGameIntroKey, "collection", CollectionGameIntro)
}

func stringField(item Record, key string) string {
	if value, ok := item[key].(string); ok {
		return value
	}
	return ""
}
