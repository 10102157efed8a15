package main

import (
	"context"

	"github.com/aozora-fansite/internal/config"
	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/models"
	"github.com/aozora-fansite/internal/provider"
	"github.com/aozora-fansite/internal/service"
)

// 向数据库写入一批演示内容，方便本地联调前台页面。
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	ctx := context.Background()
	c := provider.NewContainer(cfg)
	if err := c.DataManager.Migrate(ctx); err != nil {
		stdLog.Fatalf("旧版数据迁移失败: %v", err)
	}
	if err := c.DataManager.Bootstrap(ctx); err != nil {
		stdLog.Fatalf("默认数据初始化失败: %v", err)
	}
	if err := c.AuthService.EnsureAdminExists(ctx); err != nil {
		stdLog.Fatalf("默认管理员初始化失败: %v", err)
	}

	// 轮播图
	carousels, err := c.CarouselService.List(ctx)
	if err != nil {
		stdLog.Fatalf("轮播图读取失败: %v", err)
	}
	if len(carousels) == 0 {
		slides := []service.CarouselInput{
			{
				Image:       "/uploads/carousel/spring.jpg",
				Title:       "樱花盛开的季节",
				Description: "新学期的故事从这里开始",
				Link:        "/announcements",
			},
			{
				Image:       "/uploads/carousel/summer.jpg",
				Title:       "夏日祭典",
				Description: "烟花之下的约定",
			},
			{
				Image:       "/uploads/carousel/release.jpg",
				Title:       "正式版现已发售",
				Description: "体验完整的青空之恋物语",
				Link:        "/game-intro",
			},
		}
		for _, input := range slides {
			if _, err := c.CarouselService.Create(ctx, input); err != nil {
				stdLog.Printf("轮播图创建失败: %v", err)
			}
		}
		stdLog.Printf("已写入演示轮播图: %d 条", len(slides))
	} else {
		stdLog.Printf("轮播图已存在，跳过")
	}

	// 游戏介绍
	if _, err := c.GameIntroService.Update(ctx, service.GameIntroInput{
		Title:       "青空之恋",
		Description: "一款充满青春气息的校园恋爱视觉小说",
		Features: []service.FeatureInput{
			{Icon: "story", Title: "多线剧情", Description: "五条可攻略线路，超过三十个结局"},
			{Icon: "art", Title: "全彩立绘", Description: "超过两百张原画与 CG"},
			{Icon: "voice", Title: "全程配音", Description: "主要角色全语音演出"},
		},
	}); err != nil {
		stdLog.Printf("游戏介绍写入失败: %v", err)
	}

	// 角色
	characters, err := c.CharacterService.List(ctx)
	if err != nil {
		stdLog.Fatalf("角色读取失败: %v", err)
	}
	if len(characters) == 0 {
		roster := []service.CharacterInput{
			{
				Name:        "星野美咲",
				Avatar:      "/uploads/characters/misaki.png",
				Personality: "开朗直率",
				Description: "天文社社长，总是仰望着星空的元气少女。",
				Background:  "与主角青梅竹马，约定一起看一次完整的流星雨。",
			},
			{
				Name:        "冰川诗织",
				Avatar:      "/uploads/characters/shiori.png",
				Personality: "沉静寡言",
				Description: "图书委员，喜欢在旧馆的窗边读诗集。",
			},
			{
				Name:        "天野遥",
				Avatar:      "/uploads/characters/haruka.png",
				Personality: "温柔体贴",
				Description: "转学生，随身带着一台旧胶片相机。",
				Background:  "似乎在寻找某张多年前拍下的照片中的地点。",
			},
		}
		for _, input := range roster {
			if _, err := c.CharacterService.Create(ctx, input); err != nil {
				stdLog.Printf("角色创建失败: %v", err)
			}
		}
		stdLog.Printf("已写入演示角色: %d 名", len(roster))
	} else {
		stdLog.Printf("角色已存在，跳过")
	}

	// 截图
	screenshots, err := c.ScreenshotService.List(ctx)
	if err != nil {
		stdLog.Fatalf("截图读取失败: %v", err)
	}
	if len(screenshots) == 0 {
		shots := []service.ScreenshotInput{
			{Image: "/uploads/screenshots/classroom.jpg", Caption: "放学后的教室", Category: "日常"},
			{Image: "/uploads/screenshots/festival.jpg", Caption: "夏日祭典的烟花", Category: "剧情"},
			{Image: "/uploads/screenshots/rooftop.jpg", Caption: "天台的告白", Category: "剧情"},
			{Image: "/uploads/screenshots/stargazing.jpg", Caption: "天文社的观星夜", Category: "日常"},
		}
		for _, input := range shots {
			if _, err := c.ScreenshotService.Create(ctx, input); err != nil {
				stdLog.Printf("截图创建失败: %v", err)
			}
		}
		stdLog.Printf("已写入演示截图: %d 张", len(shots))
	} else {
		stdLog.Printf("截图已存在，跳过")
	}

	// 公告
	announcements, err := c.AnnouncementService.List(ctx)
	if err != nil {
		stdLog.Fatalf("公告读取失败: %v", err)
	}
	if len(announcements) == 0 {
		notices := []service.AnnouncementInput{
			{Title: "正式版发售", Content: "《青空之恋》正式版现已发售，感谢大家的支持！", Date: "2023-07-28", Important: true},
			{Title: "1.0.1 补丁", Content: "修复了第二章存档偶发损坏的问题。", Date: "2023-08-05"},
			{Title: "夏季壁纸包", Content: "官网追加了四张夏季主题壁纸，欢迎下载。", Date: "2023-08-12"},
		}
		for _, input := range notices {
			if _, err := c.AnnouncementService.Create(ctx, input); err != nil {
				stdLog.Printf("公告创建失败: %v", err)
			}
		}
		stdLog.Printf("已写入演示公告: %d 条", len(notices))
	} else {
		stdLog.Printf("公告已存在，跳过")
	}

	stdLog.Printf("演示数据写入完成")
}
