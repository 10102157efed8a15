package provider

import (
	"context"
	"strings"

	"github.com/aozora-fansite/internal/cache"
	"github.com/aozora-fansite/internal/config"
	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/models"
	"github.com/aozora-fansite/internal/queue"
	"github.com/aozora-fansite/internal/service"
	"github.com/aozora-fansite/internal/store"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// 数据层
	Store       store.Store
	DataManager *data.Manager

	// Services
	AuthService         *service.AuthService
	CarouselService     *service.CarouselService
	GameIntroService    *service.GameIntroService
	CharacterService    *service.CharacterService
	ScreenshotService   *service.ScreenshotService
	AnnouncementService *service.AnnouncementService
	SiteSettingsService *service.SiteSettingsService
	CommentService      *service.CommentService
	LikeService         *service.LikeService
	UploadService       *service.UploadService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化存储与数据管理器
	c.initDataManager()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initDataManager() {
	backend := strings.ToLower(strings.TrimSpace(c.Config.Storage.Backend))
	switch backend {
	case "redis":
		if client := cache.Client(); client != nil {
			rs, err := store.NewRedisStore(client, c.Config.Redis.Prefix)
			if err != nil {
				logger.Warnw("provider_redis_store_init_failed_fallback_db", "error", err)
				c.Store = store.NewGormStore(models.DB)
			} else {
				c.Store = rs
			}
		} else {
			logger.Warnw("provider_redis_store_unavailable_fallback_db")
			c.Store = store.NewGormStore(models.DB)
		}
	case "memory":
		c.Store = store.NewMemoryStore()
	default:
		c.Store = store.NewGormStore(models.DB)
	}

	c.DataManager = data.NewManager(c.Store)

	// 集合变更时失效对应的读缓存
	c.DataManager.Subscribe(func(collection string) {
		switch collection {
		case data.CollectionGameIntro, data.CollectionSiteSettings:
			if err := cache.Del(context.Background(), "content:"+collection); err != nil {
				logger.Warnw("provider_content_cache_invalidate_failed", "collection", collection, "error", err)
			}
		}
	})
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.DataManager, c.QueueClient)
	c.CarouselService = service.NewCarouselService(c.DataManager)
	c.GameIntroService = service.NewGameIntroService(c.DataManager)
	c.CharacterService = service.NewCharacterService(c.DataManager)
	c.ScreenshotService = service.NewScreenshotService(c.DataManager)
	c.AnnouncementService = service.NewAnnouncementService(c.DataManager)
	c.SiteSettingsService = service.NewSiteSettingsService(c.DataManager)
	c.CommentService = service.NewCommentService(c.DataManager)
	c.LikeService = service.NewLikeService(c.DataManager, c.CommentService, c.QueueClient)
	c.UploadService = service.NewUploadService(c.Config)
}
