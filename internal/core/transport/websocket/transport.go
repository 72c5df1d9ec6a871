package websocket

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/benbjohnson/clock"
	ws "github.com/gorilla/websocket"

	"github.com/dep2p/go-commontransport/internal/core/metrics"
	"github.com/dep2p/go-commontransport/internal/core/transport/pending"
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	"github.com/dep2p/go-commontransport/pkg/lib/log"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

var logger = log.Logger("core/transport/websocket")

// layerName 带宽统计中的层名
const layerName = "ws"

// wsComponent /ws 段
var wsComponent, _ = ma.NewComponent("ws", "")

// ============================================================================
//                              Transport 实现
// ============================================================================

// Transport WebSocket 升级传输层
type Transport struct {
	inner    interfaces.Transport
	config   Config
	spawner  pending.Spawner
	clock    clock.Clock
	reporter metrics.Reporter
}

// 确保实现接口
var _ interfaces.Transport = Transport{}

// NewTransport 创建 WebSocket 传输层
func NewTransport(inner interfaces.Transport, spawner pending.Spawner, config Config) Transport {
	return Transport{
		inner:   inner,
		config:  config,
		spawner: spawner,
		clock:   clock.New(),
	}
}

// WithClock 返回使用指定时钟的副本
func (t Transport) WithClock(clk clock.Clock) Transport {
	t.clock = clk
	return t
}

// WithReporter 返回在升级后的连接上统计带宽的副本
func (t Transport) WithReporter(reporter metrics.Reporter) Transport {
	t.reporter = reporter
	return t
}

// Inner 返回内层传输
func (t Transport) Inner() interfaces.Transport {
	return t.inner
}

func (t Transport) withInner(inner interfaces.Transport) Transport {
	t.inner = inner
	return t
}

// rewrap 把内层的拒绝改写为本层的拒绝，地址恢复为本层收到的地址
func (t Transport) rewrap(err error, addr ma.Multiaddr) error {
	refused, ok := interfaces.AsRefused(err)
	if !ok {
		return err
	}
	return interfaces.Refuse(t.withInner(refused.Transport), addr)
}

// ============================================================================
//                              Transport 接口实现
// ============================================================================

// ListenOn 在 <inner>/ws 上监听
//
// 只接受以 /ws 结尾的地址；返回的绑定地址重新附加 /ws。
func (t Transport) ListenOn(addr ma.Multiaddr) (interfaces.Listener, ma.Multiaddr, error) {
	head, last := ma.SplitLast(addr)
	if head == nil || last.Code() != ma.P_WS {
		return nil, nil, interfaces.Refuse(t, addr)
	}

	inner, bound, err := t.inner.ListenOn(head)
	if err != nil {
		return nil, nil, t.rewrap(err, addr)
	}

	wsBound := bound.Encapsulate(wsComponent.Multiaddr())
	logger.Debug("WebSocket 开始监听", "addr", wsBound.String())

	return &listener{
		inner:     inner,
		addr:      wsBound,
		transport: t,
	}, wsBound, nil
}

// Dial 拨号 <inner>/ws 或 <inner>/wss
func (t Transport) Dial(addr ma.Multiaddr) (interfaces.PendingConn, error) {
	head, last, ok := splitWebSocket(addr)
	if !ok {
		return nil, interfaces.Refuse(t, addr)
	}

	target, ok := handshakeURL(head, last.Code() == ma.P_WSS)
	if !ok {
		return nil, interfaces.Refuse(t, addr)
	}

	pc, err := t.inner.Dial(head)
	if err != nil {
		return nil, t.rewrap(err, addr)
	}

	return pending.Then(pc, t.spawner, func(ctx context.Context, raw interfaces.Conn) (interfaces.Conn, error) {
		return t.clientHandshake(ctx, raw, target, last)
	}), nil
}

// NatTraversal 去掉两端的 /ws|/wss 段交给内层，结果附加服务端的末段
func (t Transport) NatTraversal(server, observed ma.Multiaddr) ma.Multiaddr {
	serverHead, serverLast, ok := splitWebSocket(server)
	if !ok {
		return nil
	}
	observedHead, _, ok := splitWebSocket(observed)
	if !ok {
		return nil
	}

	translated := t.inner.NatTraversal(serverHead, observedHead)
	if translated == nil {
		return nil
	}
	return translated.Encapsulate(serverLast.Multiaddr())
}

// ============================================================================
//                              握手
// ============================================================================

// watchdog 超时后关闭底层连接；stop 返回 false 表示已经超时
func (t Transport) watchdog(ctx context.Context, raw net.Conn) (stop func() bool) {
	timer := t.clock.AfterFunc(t.config.HandshakeTimeout, func() { _ = raw.Close() })
	stopCtx := context.AfterFunc(ctx, func() { _ = raw.Close() })
	return func() bool {
		stopCtx()
		return timer.Stop()
	}
}

func (t Transport) clientHandshake(ctx context.Context, raw interfaces.Conn, target *url.URL, last ma.Component) (interfaces.Conn, error) {
	stop := t.watchdog(ctx, raw)

	dialer := ws.Dialer{
		NetDialContext: func(context.Context, string, string) (net.Conn, error) {
			return raw, nil
		},
		HandshakeTimeout:  t.config.HandshakeTimeout,
		ReadBufferSize:    t.config.ReadBufferSize,
		WriteBufferSize:   t.config.WriteBufferSize,
		EnableCompression: t.config.EnableCompression,
		TLSClientConfig:   t.config.TLSClientConfig,
	}

	c, resp, err := dialer.DialContext(ctx, target.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if !stop() {
		if c != nil {
			_ = c.Close()
		}
		_ = raw.Close()
		return nil, fmt.Errorf("%w: dial %s", ErrHandshakeTimeout, target)
	}
	if err != nil {
		_ = raw.Close()
		logger.Debug("WebSocket 客户端握手失败", "url", target.String(), "err", err)
		return nil, fmt.Errorf("%w: dial %s: %v", ErrHandshakeFailed, target, err)
	}

	conn := newConn(c,
		raw.LocalMultiaddr().Encapsulate(wsComponent.Multiaddr()),
		raw.RemoteMultiaddr().Encapsulate(last.Multiaddr()),
	)
	return metrics.NewCountingConn(conn, t.reporter, layerName), nil
}

func (t Transport) serverHandshake(ctx context.Context, raw interfaces.Conn) (interfaces.Conn, error) {
	stop := t.watchdog(ctx, raw)

	br := bufio.NewReader(raw)
	req, err := http.ReadRequest(br)
	if err != nil {
		timedOut := !stop()
		_ = raw.Close()
		if timedOut {
			return nil, fmt.Errorf("%w: read request from %s", ErrHandshakeTimeout, raw.RemoteMultiaddr())
		}
		return nil, fmt.Errorf("%w: read request from %s: %v", ErrHandshakeFailed, raw.RemoteMultiaddr(), err)
	}

	upgrader := ws.Upgrader{
		HandshakeTimeout:  t.config.HandshakeTimeout,
		ReadBufferSize:    t.config.ReadBufferSize,
		WriteBufferSize:   t.config.WriteBufferSize,
		EnableCompression: t.config.EnableCompression,
		CheckOrigin:       func(*http.Request) bool { return true },
	}

	c, err := upgrader.Upgrade(newResponseWriter(raw, br), req, nil)
	if !stop() {
		if c != nil {
			_ = c.Close()
		}
		_ = raw.Close()
		return nil, fmt.Errorf("%w: upgrade %s", ErrHandshakeTimeout, raw.RemoteMultiaddr())
	}
	if err != nil {
		_ = raw.Close()
		logger.Debug("WebSocket 服务端握手失败", "remote", raw.RemoteMultiaddr().String(), "err", err)
		return nil, fmt.Errorf("%w: upgrade %s: %v", ErrHandshakeFailed, raw.RemoteMultiaddr(), err)
	}

	conn := newConn(c,
		raw.LocalMultiaddr().Encapsulate(wsComponent.Multiaddr()),
		raw.RemoteMultiaddr().Encapsulate(wsComponent.Multiaddr()),
	)
	return metrics.NewCountingConn(conn, t.reporter, layerName), nil
}
