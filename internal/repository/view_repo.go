package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yuheng2/reader_go_server/internal/model"
)

type ViewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

// Record 写入阅读记录。去重由 (user_id, content_type, content_id)
// 唯一索引兜底：冲突时静默跳过，返回 false 表示该内容此前已读过。
// 应用层的存在性检查只是快路径，存储层才是去重的最终裁决。
func (r *ViewRepository) Record(view *model.ContentView) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(view)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 该用户是否已读过此内容
func (r *ViewRepository) Exists(userID int64, kind model.ContentKind, contentID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.ContentView{}).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, kind, contentID).
		Count(&count).Error
	return count > 0, err
}

// CountInRange 统计 [from, to) 时间窗内该用户某类内容的去重阅读数
func (r *ViewRepository) CountInRange(userID int64, kind model.ContentKind, from, to time.Time) (int, error) {
	var count int64
	err := r.db.Model(&model.ContentView{}).
		Where("user_id = ? AND content_type = ? AND created_at >= ? AND created_at < ?", userID, kind, from, to).
		Count(&count).Error
	return int(count), err
}
