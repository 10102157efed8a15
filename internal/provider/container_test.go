package provider

import (
	"testing"

	"github.com/aozora-fansite/internal/config"
	"github.com/aozora-fansite/internal/models"
	"github.com/aozora-fansite/internal/store"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })
}

func storeTypeName(s store.Store) string {
	switch s.(type) {
	case *store.MemoryStore:
		return "memory"
	case *store.GormStore:
		return "gorm"
	case *store.RedisStore:
		return "redis"
	default:
		return "unknown"
	}
}

func TestNewContainerStorageBackends(t *testing.T) {
	setTestDB(t)

	cases := []struct {
		name    string
		backend string
		want    string
	}{
		{"memory", "memory", "memory"},
		{"db", "db", "gorm"},
		// Redis 未启用时回退到数据库存储
		{"redis_unavailable", "redis", "gorm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Storage.Backend = tc.backend

			c := NewContainer(cfg)
			if got := storeTypeName(c.Store); got != tc.want {
				t.Fatalf("store backend want %s got %s", tc.want, got)
			}
			if c.DataManager == nil {
				t.Fatalf("data manager not initialized")
			}
			if c.AuthService == nil || c.LikeService == nil || c.UploadService == nil {
				t.Fatalf("services not initialized: %+v", c)
			}
		})
	}
}
