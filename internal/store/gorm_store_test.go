package store

import (
	"context"
	"testing"

	"github.com/aozora-fansite/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestGormStoreSetGetDelete(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "carousels"); err != nil || found {
		t.Fatalf("missing key: found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "carousels", `[{"id":"c1"}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, found, err := s.Get(ctx, "carousels")
	if err != nil || !found {
		t.Fatalf("get after set: found=%v err=%v", found, err)
	}
	if value != `[{"id":"c1"}]` {
		t.Fatalf("unexpected value: %s", value)
	}

	// 覆盖写入
	if err := s.Set(ctx, "carousels", "[]"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	value, _, err = s.Get(ctx, "carousels")
	if err != nil || value != "[]" {
		t.Fatalf("overwrite value: %q err=%v", value, err)
	}

	if err := s.Delete(ctx, "carousels"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found, _ := s.Get(ctx, "carousels"); found {
		t.Fatalf("key should be gone after delete")
	}

	// 删除不存在的键不报错
	if err := s.Delete(ctx, "carousels"); err != nil {
		t.Fatalf("delete missing key failed: %v", err)
	}
}

func TestMemoryStoreIsolatedCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, found, err := s.Get(ctx, "k")
	if err != nil || !found || value != "v1" {
		t.Fatalf("get: value=%q found=%v err=%v", value, found, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("key should be gone after delete")
	}
}
