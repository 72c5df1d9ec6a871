package testutil

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	commontransport "github.com/dep2p/go-commontransport"
	"github.com/dep2p/go-commontransport/config"
	"github.com/dep2p/go-commontransport/internal/core/metrics"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// TestTransportBuilder 测试传输构建器
//
// 使用 Builder 模式通过 Fx 模块构建 CommonTransport。
//
// 示例:
//
//	tr := testutil.NewTestTransport(t).
//		WithDNSServer(dnsAddr).
//		Start()
type TestTransportBuilder struct {
	t   *testing.T
	cfg *config.Config
}

// TestTransport 运行中的测试传输
type TestTransport struct {
	commontransport.CommonTransport

	// Counter 带宽计数器，禁用带宽统计时为 nil
	Counter *metrics.BandwidthCounter
}

// NewTestTransport 创建测试传输构建器
//
// 默认配置:
//   - DNS 服务器: 127.0.0.1:1（不可达，避免测试访问外部网络）
//   - 带宽统计: 启用
func NewTestTransport(t *testing.T) *TestTransportBuilder {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Transport.DNS.Servers = []string{"127.0.0.1:1"}
	cfg.Transport.DNS.Timeout = config.Duration(time.Second)
	return &TestTransportBuilder{t: t, cfg: cfg}
}

// WithDNSServer 设置 DNS 服务器
func (b *TestTransportBuilder) WithDNSServer(addr string) *TestTransportBuilder {
	b.cfg.Transport.DNS.Servers = []string{addr}
	return b
}

// WithConfig 修改配置
func (b *TestTransportBuilder) WithConfig(fn func(cfg *config.Config)) *TestTransportBuilder {
	fn(b.cfg)
	return b
}

// Start 启动 Fx 应用并返回传输，测试结束时停止
func (b *TestTransportBuilder) Start() *TestTransport {
	b.t.Helper()

	tr := &TestTransport{}
	targets := []any{&tr.CommonTransport}
	if b.cfg.Bandwidth.Enabled {
		targets = append(targets, &tr.Counter)
	}

	app := commontransport.NewApp(b.cfg, fx.Populate(targets...))
	require.NoError(b.t, app.Err())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(b.t, app.Start(ctx))

	b.t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Stop(ctx)
	})
	return tr
}

// ServeEcho 在 DefaultListenAddr 上运行回显服务，返回绑定地址
func (tr *TestTransport) ServeEcho(t *testing.T) ma.Multiaddr {
	t.Helper()

	l, bound, err := tr.ListenOn(ma.StringCast(DefaultListenAddr))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	go func() {
		ctx := context.Background()
		for {
			in, err := l.Accept(ctx)
			if err != nil {
				return
			}
			go func() {
				conn, err := in.Upgrade.Wait(ctx)
				if err != nil {
					return
				}
				defer conn.Close()
				_, _ = io.Copy(conn, conn)
			}()
		}
	}()
	return bound
}

// Echo 拨号到地址，发送 payload 并读取回显
func (tr *TestTransport) Echo(ctx context.Context, addr ma.Multiaddr, payload string) (string, error) {
	pc, err := tr.Dial(addr)
	if err != nil {
		return "", err
	}
	conn, err := pc.Wait(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(payload)); err != nil {
		return "", err
	}
	buf := make([]byte, len(payload))
	if _, err := io.ReadFull(conn, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
