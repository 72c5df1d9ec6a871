package transport

import (
	"context"
	"crypto/tls"
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-commontransport/config"
	"github.com/dep2p/go-commontransport/internal/core/metrics"
	"github.com/dep2p/go-commontransport/internal/core/transport/dns"
	"github.com/dep2p/go-commontransport/internal/core/transport/pending"
	"github.com/dep2p/go-commontransport/internal/core/transport/tcp"
	"github.com/dep2p/go-commontransport/internal/core/transport/websocket"
	"github.com/dep2p/go-commontransport/pkg/lib/log"
	"github.com/dep2p/go-commontransport/pkg/reactor"
)

var logger = log.Logger("core/transport")

// Config 传输栈配置
type Config struct {
	TCP       tcp.Config
	DNS       dns.Config
	WebSocket websocket.Config
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		TCP:       tcp.DefaultConfig(),
		DNS:       dns.DefaultConfig(),
		WebSocket: websocket.DefaultConfig(),
	}
}

// ConfigFromUnified 从统一配置创建传输栈配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return NewConfig()
	}
	tc := cfg.Transport

	wsCfg := websocket.Config{
		HandshakeTimeout:  tc.WebSocket.HandshakeTimeout.Duration(),
		ReadBufferSize:    tc.WebSocket.ReadBufferSize,
		WriteBufferSize:   tc.WebSocket.WriteBufferSize,
		EnableCompression: tc.WebSocket.EnableCompression,
	}
	if tc.WebSocket.InsecureSkipVerify {
		wsCfg.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // 仅测试环境开启
	}

	return Config{
		TCP: tcp.Config{
			DialTimeout:     tc.DialTimeout.Duration(),
			KeepAlive:       tc.TCP.KeepAlive,
			KeepAlivePeriod: tc.TCP.KeepAlivePeriod.Duration(),
			NoDelay:         tc.TCP.NoDelay,
		},
		DNS: dns.Config{
			Servers:    tc.DNS.Servers,
			ResolvConf: tc.DNS.ResolvConf,
			Timeout:    tc.DNS.Timeout.Duration(),
			CacheSize:  tc.DNS.CacheSize,
			CacheTTL:   tc.DNS.CacheTTL.Duration(),
		},
		WebSocket: wsCfg,
	}
}

// Validate 验证各层配置
func (c Config) Validate() error {
	if err := c.TCP.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.DNS.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.WebSocket.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// NewStack 组装 WS<DNS<TCP>> 传输栈
//
// 三层共享同一个 spawner。reporter 为 nil 时不统计带宽。
func NewStack(spawner pending.Spawner, cfg Config, reporter metrics.Reporter) websocket.Transport {
	tcpTransport := tcp.NewTransport(spawner, cfg.TCP)
	if reporter != nil {
		tcpTransport = tcpTransport.WithReporter(reporter)
	}

	resolver := dns.NewResolver(cfg.DNS)
	dnsTransport := dns.NewTransport(tcpTransport, resolver, spawner)

	wsTransport := websocket.NewTransport(dnsTransport, spawner, cfg.WebSocket)
	if reporter != nil {
		wsTransport = wsTransport.WithReporter(reporter)
	}

	logger.Debug("传输栈已组装",
		"dnsServers", len(resolver.Servers()),
		"bandwidth", reporter != nil)
	return wsTransport
}

// ============================================================================
//                              Fx 模块
// ============================================================================

// Params 传输栈依赖
type Params struct {
	fx.In

	Reactor    *reactor.Reactor
	UnifiedCfg *config.Config   `optional:"true"`
	Reporter   metrics.Reporter `optional:"true"`
}

// Module 返回 Fx 模块
//
// 提供 Config 和组装好的 websocket.Transport，并在 UnifiedCfg 启用带宽统计时
// 在 reactor 上运行空闲统计清理。
func Module() fx.Option {
	return fx.Module("transport",
		fx.Provide(
			ProvideConfig,
			ProvideStack,
		),
		fx.Invoke(registerTrimmer),
	)
}

// ProvideConfig 从统一配置提供传输栈配置
func ProvideConfig(p Params) (Config, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ProvideStack 提供组装好的传输栈
func ProvideStack(p Params, cfg Config) (websocket.Transport, error) {
	if p.Reactor == nil {
		return websocket.Transport{}, ErrNoReactor
	}
	return NewStack(p.Reactor, cfg, p.Reporter), nil
}

// registerTrimmer 在启动时提交带宽清理任务
func registerTrimmer(lc fx.Lifecycle, p Params) {
	if p.Reporter == nil || p.UnifiedCfg == nil || !p.UnifiedCfg.Bandwidth.Enabled {
		return
	}
	bw := p.UnifiedCfg.Bandwidth
	trimmer := metrics.NewTrimmer(p.Reporter, bw.TrimInterval.Duration(), bw.IdleTimeout.Duration(), nil)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if !p.Reactor.Go(trimmer.Run) {
				logger.Warn("reactor 已关闭，带宽清理未启动")
			}
			return nil
		},
	})
}
