//go:build !js

package commontransport

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-commontransport/config"
	"github.com/dep2p/go-commontransport/internal/core/metrics"
	"github.com/dep2p/go-commontransport/internal/core/transport"
	"github.com/dep2p/go-commontransport/internal/core/transport/websocket"
	"github.com/dep2p/go-commontransport/pkg/lib/log"
	"github.com/dep2p/go-commontransport/pkg/reactor"
)

var fxLogger = log.Logger("commontransport/fx")

// Module 返回组合传输的 Fx 模块
//
// 统一配置校验失败时返回 fx.Error，应用构建失败。
//
// 提供：
//   - *config.Config: 传入的配置（nil 时使用默认配置）
//   - *reactor.Reactor: 在 OnStop 时关闭
//   - metrics.Reporter / *metrics.Collector: 仅在启用带宽统计时提供
//   - CommonTransport
func Module(cfg *config.Config) fx.Option {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return fx.Error(fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	opts := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(provideReactor),
		transport.Module(),
		fx.Provide(provideCommonTransport),
	}
	if cfg.Bandwidth.Enabled {
		opts = append(opts, fx.Provide(provideBandwidth))
	}
	return fx.Module("commontransport", opts...)
}

// NewApp 构建 Fx 应用
//
// Fx 自身的事件日志被丢弃，避免干扰用户日志。
func NewApp(cfg *config.Config, extra ...fx.Option) *fx.App {
	opts := make([]fx.Option, 0, len(extra)+2)
	opts = append(opts, Module(cfg))
	opts = append(opts, extra...)
	opts = append(opts, fx.WithLogger(func() fxevent.Logger {
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	}))
	return fx.New(opts...)
}

// provideReactor 创建执行上下文并在停止时关闭
func provideReactor(lc fx.Lifecycle) *reactor.Reactor {
	rt := reactor.New(context.Background())
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if err := rt.Close(); err != nil {
				fxLogger.Warn("reactor 关闭时存在任务错误", "err", err)
				return err
			}
			return nil
		},
	})
	return rt
}

// bandwidthOutput 带宽统计输出
type bandwidthOutput struct {
	fx.Out

	Counter   *metrics.BandwidthCounter
	Reporter  metrics.Reporter
	Collector *metrics.Collector
}

// provideBandwidth 创建带宽计数器和 Prometheus 采集器
func provideBandwidth() bandwidthOutput {
	counter := metrics.NewBandwidthCounter()
	return bandwidthOutput{
		Counter:   counter,
		Reporter:  counter,
		Collector: metrics.NewCollector(counter),
	}
}

// provideCommonTransport 用组装好的传输栈构造组合传输
func provideCommonTransport(stack websocket.Transport) CommonTransport {
	return wrap(stack)
}

// RegisterCollector 把带宽采集器注册到 Prometheus
//
// 未启用带宽统计时 collector 为 nil，直接返回。
func RegisterCollector(reg prometheus.Registerer, collector *metrics.Collector) error {
	if collector == nil {
		return nil
	}
	return reg.Register(collector)
}
