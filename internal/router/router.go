package router

import (
	"fmt"
	"strings"

	"github.com/aozora-fansite/internal/cache"
	"github.com/aozora-fansite/internal/config"
	adminhandlers "github.com/aozora-fansite/internal/http/handlers/admin"
	publichandlers "github.com/aozora-fansite/internal/http/handlers/public"
	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "aozora"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		public.Use(OptionalUserAuthMiddleware(cfg.JWT.SecretKey, c.AuthService))
		{
			public.GET("/carousels", publicHandler.GetCarousels)
			public.GET("/game-intro", publicHandler.GetGameIntro)
			public.GET("/characters", publicHandler.GetCharacters)
			public.GET("/characters/:id", publicHandler.GetCharacter)
			public.GET("/screenshots", publicHandler.GetScreenshots)
			public.GET("/announcements", publicHandler.GetAnnouncements)
			public.GET("/announcements/:id", publicHandler.GetAnnouncement)
			public.GET("/site-settings", publicHandler.GetSiteSettings)
			public.GET("/posts/:postId/comments", publicHandler.GetComments)
			public.GET("/posts/:postId/comments/count", publicHandler.GetCommentCount)
			public.GET("/likes/:targetType/:targetId", publicHandler.GetLikeStatus)
			public.POST("/likes/bulk-status", publicHandler.BulkLikeStatus)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.UserLogin)
			auth.POST("/logout", OptionalUserAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), publicHandler.UserLogout)
			auth.GET("/me", publicHandler.GetCurrentUser)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService))
		{
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.GET("/me/likes", publicHandler.GetMyLikes)
			user.POST("/comments", publicHandler.CreateComment)
			user.POST("/comments/:id/replies", publicHandler.CreateReply)
			user.DELETE("/comments/:id", publicHandler.DeleteComment)
			user.DELETE("/comments/:id/replies/:replyId", publicHandler.DeleteReply)
			user.POST("/likes/toggle", publicHandler.ToggleLike)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), AdminRoleMiddleware())
			{
				// 仪表盘
				authorized.GET("/dashboard", adminHandler.GetDashboard)

				// 轮播图管理
				authorized.GET("/carousels", adminHandler.GetAdminCarousels)
				authorized.POST("/carousels", adminHandler.CreateCarousel)
				authorized.PUT("/carousels/:id", adminHandler.UpdateCarousel)
				authorized.DELETE("/carousels/:id", adminHandler.DeleteCarousel)

				// 游戏介绍管理
				authorized.GET("/game-intro", adminHandler.GetAdminGameIntro)
				authorized.PUT("/game-intro", adminHandler.UpdateGameIntro)

				// 角色管理
				authorized.GET("/characters", adminHandler.GetAdminCharacters)
				authorized.POST("/characters", adminHandler.CreateCharacter)
				authorized.PUT("/characters/:id", adminHandler.UpdateCharacter)
				authorized.DELETE("/characters/:id", adminHandler.DeleteCharacter)

				// 截图管理
				authorized.GET("/screenshots", adminHandler.GetAdminScreenshots)
				authorized.POST("/screenshots", adminHandler.CreateScreenshot)
				authorized.PUT("/screenshots/:id", adminHandler.UpdateScreenshot)
				authorized.DELETE("/screenshots/:id", adminHandler.DeleteScreenshot)

				// 公告管理
				authorized.GET("/announcements", adminHandler.GetAdminAnnouncements)
				authorized.POST("/announcements", adminHandler.CreateAnnouncement)
				authorized.PUT("/announcements/:id", adminHandler.UpdateAnnouncement)
				authorized.DELETE("/announcements/:id", adminHandler.DeleteAnnouncement)

				// 站点设置管理
				authorized.GET("/site-settings", adminHandler.GetAdminSiteSettings)
				authorized.PUT("/site-settings", adminHandler.UpdateSiteSettings)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.PUT("/users/:id/role", adminHandler.ChangeUserRole)
				authorized.DELETE("/users/:id", adminHandler.DeleteUser)
				authorized.DELETE("/users/:id/likes", adminHandler.ClearUserLikes)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
