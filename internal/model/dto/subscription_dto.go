package dto

import (
	"github.com/yuheng2/reader_go_server/internal/model"
)

// SubscribeRequest 订阅请求
type SubscribeRequest struct {
	PlanID int64 `json:"plan_id" binding:"required"`
}

// CurrentSubscription 当前订阅（含今日用量统计）
type CurrentSubscription struct {
	*model.Subscription
	ArticlesReadToday  int `json:"articles_read_today"`
	VideosWatchedToday int `json:"videos_watched_today"`
}
