package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/api/handler"
	"github.com/yuheng2/reader_go_server/internal/api/middleware"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	planHandler         *handler.PlanHandler
	subscriptionHandler *handler.SubscriptionHandler
	articleHandler      *handler.ArticleHandler
	videoHandler        *handler.VideoHandler
	uploadHandler       *handler.UploadHandler
	wsHandler           *handler.WSHandler
	userRepo            *repository.UserRepository
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	planHandler *handler.PlanHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	articleHandler *handler.ArticleHandler,
	videoHandler *handler.VideoHandler,
	uploadHandler *handler.UploadHandler,
	wsHandler *handler.WSHandler,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		planHandler:         planHandler,
		subscriptionHandler: subscriptionHandler,
		articleHandler:      articleHandler,
		videoHandler:        videoHandler,
		uploadHandler:       uploadHandler,
		wsHandler:           wsHandler,
		userRepo:            userRepo,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket：管理端实时浏览事件（token 在 query，Handler 里自行校验）
		api.GET("/ws/views", r.wsHandler.HandleViews)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/verify-email", r.authHandler.VerifyEmail)
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.POST("/auth/refresh", r.authHandler.Refresh)

			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/avatar", r.userHandler.UploadAvatar)
			}

			// 套餐
			plans := authenticated.Group("/plans")
			{
				plans.GET("", r.planHandler.List)
				plans.GET("/:id", r.planHandler.Get)
			}

			// 订阅
			subscriptions := authenticated.Group("/subscriptions")
			{
				subscriptions.POST("", r.subscriptionHandler.Subscribe)
				subscriptions.GET("", r.subscriptionHandler.List)
				subscriptions.GET("/current", r.subscriptionHandler.Current)
				subscriptions.DELETE("/:id", r.subscriptionHandler.Cancel)
			}

			// 内容（访问闸门在 Handler 内部）
			authenticated.GET("/articles", r.articleHandler.List)
			authenticated.GET("/articles/:id", r.articleHandler.Get)
			authenticated.GET("/videos", r.videoHandler.List)
			authenticated.GET("/videos/:id", r.videoHandler.Get)
		}

		// 管理端接口：角色以数据库为准
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret), middleware.RequireAdmin(r.userRepo))
		{
			admin.POST("/plans", r.planHandler.Create)
			admin.PUT("/plans/:id", r.planHandler.Update)
			admin.DELETE("/plans/:id", r.planHandler.Delete)

			admin.POST("/articles", r.articleHandler.Create)
			admin.PUT("/articles/:id", r.articleHandler.Update)
			admin.DELETE("/articles/:id", r.articleHandler.Delete)

			admin.POST("/videos", r.videoHandler.Create)
			admin.PUT("/videos/:id", r.videoHandler.Update)
			admin.DELETE("/videos/:id", r.videoHandler.Delete)

			admin.POST("/upload", r.uploadHandler.UploadMedia)
		}
	}

	return engine
}
