package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/api"
	"github.com/yuheng2/reader_go_server/internal/api/handler"
	"github.com/yuheng2/reader_go_server/internal/database"
	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/pkg/clock"
	"github.com/yuheng2/reader_go_server/internal/pkg/cron"
	"github.com/yuheng2/reader_go_server/internal/pkg/email"
	"github.com/yuheng2/reader_go_server/internal/pkg/oauth"
	"github.com/yuheng2/reader_go_server/internal/pkg/oss"
	"github.com/yuheng2/reader_go_server/internal/pkg/pubsub"
	"github.com/yuheng2/reader_go_server/internal/pkg/ws"
	"github.com/yuheng2/reader_go_server/internal/repository"
	"github.com/yuheng2/reader_go_server/internal/service"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Plan{},
		&model.Subscription{},
		&model.Article{},
		&model.Video{},
		&model.ContentView{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS（可选，未配置时头像和素材上传不可用）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Fatalf("Failed to init OSS client: %v", err)
		}
		log.Println("OSS client initialized")
	} else {
		log.Println("OSS not configured, uploads disabled")
	}

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	viewRepo := repository.NewViewRepository(db)

	// 初始化 Service
	clk := clock.New()
	emailSvc := email.NewService(&cfg.Email)
	publisher := pubsub.NewPublisher(rdb)

	quotaService, err := service.NewQuotaService(viewRepo, clk, cfg.Server.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", cfg.Server.Timezone, err)
	}

	authService := service.NewAuthService(userRepo, cfg, emailSvc)
	userService := service.NewUserService(userRepo, ossClient, cfg)
	planService := service.NewPlanService(planRepo)
	subscriptionService := service.NewSubscriptionService(subRepo, planRepo, userRepo, quotaService, clk)
	accessService := service.NewAccessService(userRepo, subRepo, quotaService, publisher)
	articleService := service.NewArticleService(articleRepo)
	videoService := service.NewVideoService(videoRepo)
	uploadService := service.NewUploadService(ossClient, cfg)

	// WebSocket Hub + 阅读事件转发
	wsHub := ws.NewHub()
	subscriber := pubsub.NewSubscriber(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := subscriber.Subscribe(ctx, func(event *pubsub.ViewEvent) {
			wsHub.Broadcast(&ws.Message{
				Type: "content_view",
				Data: event,
			})
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("View event subscriber stopped: %v", err)
		}
	}()
	log.Println("WebSocket hub started")

	// 初始化 Handler
	stateStore := oauth.NewStateStore(rdb)
	authHandler := handler.NewAuthHandler(authService, stateStore)
	userHandler := handler.NewUserHandler(userService)
	planHandler := handler.NewPlanHandler(planService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	articleHandler := handler.NewArticleHandler(articleService, accessService)
	videoHandler := handler.NewVideoHandler(videoService, accessService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	wsHandler := handler.NewWSHandler(wsHub, userRepo, cfg.JWT.Secret)

	// 定时清理未验证账号
	cronService := cron.NewService(userRepo, clk)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		planHandler,
		subscriptionHandler,
		articleHandler,
		videoHandler,
		uploadHandler,
		wsHandler,
		userRepo,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
