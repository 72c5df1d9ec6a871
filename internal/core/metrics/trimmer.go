package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"
)

// ErrInvalidInterval 清理间隔不是正数
var ErrInvalidInterval = errors.New("metrics: trim interval must be positive")

// Trimmer 定期清理空闲的层统计
type Trimmer struct {
	reporter Reporter
	interval time.Duration
	idle     time.Duration
	clock    clock.Clock
}

// NewTrimmer 创建清理器
//
// 每隔 interval 清理超过 idle 没有流量的层。clk 为 nil 时使用真实时钟。
func NewTrimmer(reporter Reporter, interval, idle time.Duration, clk clock.Clock) *Trimmer {
	if clk == nil {
		clk = clock.New()
	}
	return &Trimmer{
		reporter: reporter,
		interval: interval,
		idle:     idle,
		clock:    clk,
	}
}

// Run 运行清理循环，直到 ctx 取消
func (t *Trimmer) Run(ctx context.Context) error {
	if t.interval <= 0 {
		return ErrInvalidInterval
	}
	ticker := t.clock.Ticker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			t.reporter.TrimIdle(now.Add(-t.idle))
		}
	}
}
