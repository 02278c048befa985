package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
)

var fixtureSeq int64

func nextSeq() int64 {
	return atomic.AddInt64(&fixtureSeq, 1)
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := nextSeq()
	email := fmt.Sprintf("test_%d_%d@example.com", time.Now().UnixNano(), seq)
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:      fmt.Sprintf("testuser_%d_%d", time.Now().UnixNano()%100000, seq),
		Email:         &email,
		PasswordHash:  &passwordHash,
		Role:          model.RoleMember,
		EmailVerified: true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithRole 设置角色
func WithRole(role model.Role) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// WithUnverified 设置为未验证账号
func WithUnverified(code string, expiresAt time.Time) func(*model.User) {
	return func(u *model.User) {
		u.EmailVerified = false
		u.VerificationCode = &code
		u.VerificationExpiresAt = &expiresAt
	}
}

// TestPlan 创建测试套餐（默认限量档）
func TestPlan(t *testing.T, db *gorm.DB, opts ...func(*model.Plan)) *model.Plan {
	t.Helper()

	seq := nextSeq()
	plan := &model.Plan{
		Name:              fmt.Sprintf("Test Plan %d", seq),
		Slug:              fmt.Sprintf("test-plan-%d", seq),
		Type:              model.PlanPlusReader,
		Price:             9.99,
		DailyArticleLimit: 10,
		DailyVideoLimit:   10,
		IsActive:          true,
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

// WithLimits 设置每日限额
func WithLimits(article, video int) func(*model.Plan) {
	return func(p *model.Plan) {
		p.DailyArticleLimit = article
		p.DailyVideoLimit = video
	}
}

// WithPlanType 设置套餐档位
func WithPlanType(t model.PlanType) func(*model.Plan) {
	return func(p *model.Plan) {
		p.Type = t
	}
}

// WithInactive 设置为停售套餐
func WithInactive() func(*model.Plan) {
	return func(p *model.Plan) {
		p.IsActive = false
	}
}

// TestSubscription 创建生效中的测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID, planID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	sub := &model.Subscription{
		UserID:   userID,
		PlanID:   planID,
		StartsAt: time.Now().Add(-time.Hour),
		IsActive: true,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithEnded 设置为已结束的订阅
func WithEnded(endsAt time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.IsActive = false
		s.EndsAt = &endsAt
	}
}

// TestArticle 创建测试文章（默认已发布）
func TestArticle(t *testing.T, db *gorm.DB, authorID int64, opts ...func(*model.Article)) *model.Article {
	t.Helper()

	seq := nextSeq()
	article := &model.Article{
		UserID:      authorID,
		Title:       fmt.Sprintf("Test Article %d", seq),
		Slug:        fmt.Sprintf("test-article-%d", seq),
		Content:     "测试文章正文内容",
		IsPublished: true,
	}

	for _, opt := range opts {
		opt(article)
	}

	if err := db.Create(article).Error; err != nil {
		t.Fatalf("Failed to create test article: %v", err)
	}

	return article
}

// WithUnpublished 设置为未发布
func WithUnpublished() func(*model.Article) {
	return func(a *model.Article) {
		a.IsPublished = false
	}
}

// TestVideo 创建测试视频（默认已发布）
func TestVideo(t *testing.T, db *gorm.DB, authorID int64, opts ...func(*model.Video)) *model.Video {
	t.Helper()

	seq := nextSeq()
	video := &model.Video{
		UserID:          authorID,
		Title:           fmt.Sprintf("Test Video %d", seq),
		Slug:            fmt.Sprintf("test-video-%d", seq),
		VideoURL:        fmt.Sprintf("https://cdn.example.com/videos/test-%d.mp4", seq),
		DurationSeconds: 120,
		IsPublished:     true,
	}

	for _, opt := range opts {
		opt(video)
	}

	if err := db.Create(video).Error; err != nil {
		t.Fatalf("Failed to create test video: %v", err)
	}

	return video
}

// WithVideoUnpublished 设置视频为未发布
func WithVideoUnpublished() func(*model.Video) {
	return func(v *model.Video) {
		v.IsPublished = false
	}
}

// TestView 创建阅读记录
func TestView(t *testing.T, db *gorm.DB, userID int64, kind model.ContentKind, contentID int64, opts ...func(*model.ContentView)) *model.ContentView {
	t.Helper()

	view := &model.ContentView{
		UserID:      userID,
		ContentType: kind,
		ContentID:   contentID,
	}

	for _, opt := range opts {
		opt(view)
	}

	if err := db.Create(view).Error; err != nil {
		t.Fatalf("Failed to create test view: %v", err)
	}

	return view
}

// WithViewedAt 指定阅读时间
func WithViewedAt(at time.Time) func(*model.ContentView) {
	return func(v *model.ContentView) {
		v.CreatedAt = at
	}
}
