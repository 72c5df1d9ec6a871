package browser

import (
	"context"
	"fmt"
	"net"

	"github.com/dep2p/go-commontransport/internal/core/transport/pending"
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	"github.com/dep2p/go-commontransport/pkg/lib/log"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

var logger = log.Logger("core/transport/browser")

// HostDialer 宿主提供的 WebSocket 能力
//
// 返回的连接按二进制消息收发，Read 跨消息边界连续读取。
type HostDialer interface {
	DialWebSocket(ctx context.Context, url string) (net.Conn, error)
}

// HostDialerFunc 函数形式的 HostDialer
type HostDialerFunc func(ctx context.Context, url string) (net.Conn, error)

// DialWebSocket 实现 HostDialer
func (f HostDialerFunc) DialWebSocket(ctx context.Context, url string) (net.Conn, error) {
	return f(ctx, url)
}

// ============================================================================
//                              Transport 实现
// ============================================================================

// Transport 浏览器 WebSocket 传输
type Transport struct {
	dialer HostDialer
}

// 确保实现接口
var _ interfaces.Transport = Transport{}

// NewTransport 使用宿主能力创建传输
func NewTransport(dialer HostDialer) Transport {
	return Transport{dialer: dialer}
}

// ListenOn 宿主不允许监听，总是拒绝
func (t Transport) ListenOn(addr ma.Multiaddr) (interfaces.Listener, ma.Multiaddr, error) {
	return nil, nil, interfaces.Refuse(t, addr)
}

// Dial 通过宿主的 WebSocket 能力拨号
//
// 连接在宿主 goroutine 上建立，不依赖 reactor。
func (t Transport) Dial(addr ma.Multiaddr) (interfaces.PendingConn, error) {
	target, ok := dialURL(addr)
	if !ok {
		return nil, interfaces.Refuse(t, addr)
	}

	dialer := t.dialer
	return pending.Go(nil, func(ctx context.Context) (interfaces.Conn, error) {
		if dialer == nil {
			return nil, ErrNoHostDialer
		}

		c, err := dialer.DialWebSocket(ctx, target)
		if err != nil {
			logger.Debug("宿主 WebSocket 拨号失败", "url", target, "err", err)
			return nil, fmt.Errorf("browser: dial %s: %w", target, err)
		}
		return &conn{Conn: c, remoteAddr: addr}, nil
	}), nil
}

// NatTraversal 观察到的 IP 加上服务端的端口与 ws 标记
func (t Transport) NatTraversal(server, observed ma.Multiaddr) ma.Multiaddr {
	return translate(server, observed)
}

// conn 宿主连接
//
// 宿主不暴露本地地址，LocalMultiaddr 返回 nil。
type conn struct {
	net.Conn
	remoteAddr ma.Multiaddr
}

var _ interfaces.Conn = (*conn)(nil)

func (c *conn) LocalMultiaddr() ma.Multiaddr {
	return nil
}

func (c *conn) RemoteMultiaddr() ma.Multiaddr {
	return c.remoteAddr
}
