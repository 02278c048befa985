package cron

import (
	"log"
	"time"

	"github.com/yuheng2/reader_go_server/internal/pkg/clock"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

// Service 后台定时任务。配额按时间窗实时统计，不需要夜间重置，
// 这里只负责清理验证窗口已过期的未验证账号。
type Service struct {
	userRepo *repository.UserRepository
	clk      clock.Clock
	interval time.Duration
	stopChan chan struct{}
}

func NewService(userRepo *repository.UserRepository, clk clock.Clock) *Service {
	return &Service{
		userRepo: userRepo,
		clk:      clk,
		interval: time.Hour,
		stopChan: make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runCleanup()
	log.Println("Cron service started (unverified account cleanup)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runCleanup 每小时清理一次
func (s *Service) runCleanup() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.CleanupUnverified()
		}
	}
}

// CleanupUnverified 删除验证窗口已过期的未验证账号，返回删除数量
func (s *Service) CleanupUnverified() int64 {
	deleted, err := s.userRepo.DeleteUnverifiedBefore(s.clk.Now())
	if err != nil {
		log.Printf("Failed to cleanup unverified accounts: %v", err)
		return 0
	}

	if deleted > 0 {
		log.Printf("Cleaned up %d expired unverified accounts", deleted)
	}
	return deleted
}
