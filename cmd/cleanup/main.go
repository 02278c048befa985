package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/database"
	"github.com/yuheng2/reader_go_server/internal/model"
)

var (
	dryRun = flag.Bool("dry-run", true, "Dry run mode, don't actually delete accounts")
)

// 删除验证窗口已过期仍未验证邮箱的账号。
// 服务进程里有同样逻辑的定时任务，这个命令用于手动补跑和验证。
func main() {
	flag.Parse()

	log.Println("Starting unverified account cleanup...")
	log.Printf("Mode: dry-run=%v", *dryRun)

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

	now := time.Now()

	var expired []model.User
	err = db.Where("email_verified = ? AND verification_expires_at < ?", false, now).
		Find(&expired).Error
	if err != nil {
		log.Fatalf("Failed to query unverified accounts: %v", err)
	}

	if len(expired) == 0 {
		log.Println("No expired unverified accounts found")
		return
	}

	for _, user := range expired {
		age := "unknown"
		if user.VerificationExpiresAt != nil {
			age = now.Sub(*user.VerificationExpiresAt).Round(time.Hour).String()
		}
		log.Printf("  - %s (id: %d, expired %s ago)", user.Username, user.ID, age)
	}

	if *dryRun {
		log.Printf("DRY RUN - %d accounts would be deleted", len(expired))
		log.Println("Run with -dry-run=false to actually delete")
		return
	}

	result := db.Where("email_verified = ? AND verification_expires_at < ?", false, now).
		Delete(&model.User{})
	if result.Error != nil {
		log.Fatalf("Failed to delete accounts: %v", result.Error)
	}

	log.Printf("Deleted %d expired unverified accounts", result.RowsAffected)
}
