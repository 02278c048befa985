package main

import (
	"flag"
	"log"
	"os"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/database"
	"github.com/yuheng2/reader_go_server/internal/model"
)

var (
	adminEmail    = flag.String("admin-email", "", "Bootstrap admin email (skipped if empty)")
	adminPassword = flag.String("admin-password", "", "Bootstrap admin password")
	adminUsername = flag.String("admin-username", "admin", "Bootstrap admin username")
)

// stockPlans 初始套餐。已存在同 slug 的套餐时跳过，可以重复执行。
var stockPlans = []model.Plan{
	{
		Name:              "Free",
		Type:              model.PlanFree,
		Description:       "每天少量免费内容",
		Price:             0,
		DailyArticleLimit: 3,
		DailyVideoLimit:   3,
		IsActive:          true,
	},
	{
		Name:              "Plus Reader",
		Type:              model.PlanPlusReader,
		Description:       "进阶读者套餐",
		Price:             9.9,
		DailyArticleLimit: 10,
		DailyVideoLimit:   10,
		IsActive:          true,
	},
	{
		Name:              "Pro Reader",
		Type:              model.PlanProReader,
		Description:       "不限量畅读",
		Price:             29.9,
		DailyArticleLimit: model.LimitUnlimited,
		DailyVideoLimit:   model.LimitUnlimited,
		IsActive:          true,
	},
}

func main() {
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

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

	for _, plan := range stockPlans {
		plan.Slug = slug.Make(plan.Name)

		var count int64
		if err := db.Model(&model.Plan{}).Where("slug = ?", plan.Slug).Count(&count).Error; err != nil {
			log.Fatalf("Failed to check plan %s: %v", plan.Slug, err)
		}
		if count > 0 {
			log.Printf("Plan %s already exists, skipping", plan.Slug)
			continue
		}

		if err := db.Create(&plan).Error; err != nil {
			log.Fatalf("Failed to create plan %s: %v", plan.Slug, err)
		}
		log.Printf("Created plan %s (articles: %d/day, videos: %d/day)",
			plan.Slug, plan.DailyArticleLimit, plan.DailyVideoLimit)
	}

	if *adminEmail != "" {
		if *adminPassword == "" {
			log.Fatal("-admin-password is required with -admin-email")
		}
		seedAdmin(db)
	}

	log.Println("Seed completed")
}

func seedAdmin(db *gorm.DB) {
	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", *adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("Failed to check admin: %v", err)
	}
	if count > 0 {
		log.Printf("Admin %s already exists, skipping", *adminEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	hashStr := string(hash)
	admin := &model.User{
		Username:      *adminUsername,
		Email:         adminEmail,
		PasswordHash:  &hashStr,
		Role:          model.RoleAdmin,
		EmailVerified: true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Created admin %s (id: %d)", *adminEmail, admin.ID)
}
