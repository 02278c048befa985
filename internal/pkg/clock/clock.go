package clock

import (
	"sync"
	"time"
)

// Clock 可注入的时钟。每日配额依赖"今天"的判定，
// 测试通过 Mock 固定日期，避免依赖真实时间。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// New 返回系统时钟
func New() Clock {
	return realClock{}
}

// Mock 测试用时钟
type Mock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMock 创建固定在指定时间的时钟
func NewMock(now time.Time) *Mock {
	return &Mock{now: now}
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set 设置当前时间
func (m *Mock) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Advance 前进指定时长
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
