package service

import (
	"fmt"
	"time"

	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/pkg/clock"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

// QuotaService 每日用量统计。"今天"按配置时区的自然日计算，
// 用量从阅读记录按时间窗实时统计，没有需要夜间重置的计数列。
type QuotaService struct {
	viewRepo *repository.ViewRepository
	clk      clock.Clock
	loc      *time.Location
}

func NewQuotaService(viewRepo *repository.ViewRepository, clk clock.Clock, timezone string) (*QuotaService, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	return &QuotaService{
		viewRepo: viewRepo,
		clk:      clk,
		loc:      loc,
	}, nil
}

// DayBounds 当前自然日的时间窗 [今日零点, 明日零点)
func (s *QuotaService) DayBounds() (time.Time, time.Time) {
	now := s.clk.Now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return from, from.Add(24 * time.Hour)
}

// CountToday 今日该类内容的去重阅读数
func (s *QuotaService) CountToday(userID int64, kind model.ContentKind) (int, error) {
	from, to := s.DayBounds()
	return s.viewRepo.CountInRange(userID, kind, from, to)
}

// HasViewed 该用户是否已读过此内容（不限今天）
func (s *QuotaService) HasViewed(userID int64, kind model.ContentKind, contentID int64) (bool, error) {
	return s.viewRepo.Exists(userID, kind, contentID)
}

// RecordView 记录一次阅读，返回是否为新记录。
// 重复阅读由存储层唯一索引去重，不会重复计数。
func (s *QuotaService) RecordView(userID int64, kind model.ContentKind, contentID int64) (bool, error) {
	return s.viewRepo.Record(&model.ContentView{
		UserID:      userID,
		ContentType: kind,
		ContentID:   contentID,
		CreatedAt:   s.clk.Now(),
	})
}
