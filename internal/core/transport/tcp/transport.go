package tcp

import (
	"context"
	"fmt"
	"net"

	"github.com/google/uuid"

	"github.com/dep2p/go-commontransport/internal/core/metrics"
	"github.com/dep2p/go-commontransport/internal/core/transport/pending"
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	"github.com/dep2p/go-commontransport/pkg/lib/log"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

var logger = log.Logger("core/transport/tcp")

// layerName 带宽统计中的层名
const layerName = "tcp"

// ============================================================================
//                              Transport 实现
// ============================================================================

// Transport TCP 传输层
//
// 值类型：只包含配置和共享协作者的引用，复制后可独立使用。
type Transport struct {
	config   Config
	spawner  pending.Spawner
	reporter metrics.Reporter
}

// 确保实现接口
var _ interfaces.Transport = Transport{}

// NewTransport 创建 TCP 传输层
//
// spawner 通常是 reactor；为 nil 时拨号和接收循环使用独立 goroutine。
func NewTransport(spawner pending.Spawner, config Config) Transport {
	return Transport{
		config:  config,
		spawner: spawner,
	}
}

// WithReporter 返回一份在连接上统计带宽的副本
func (t Transport) WithReporter(reporter metrics.Reporter) Transport {
	t.reporter = reporter
	return t
}

// Config 返回配置
func (t Transport) Config() Config {
	return t.config
}

// ============================================================================
//                              Transport 接口实现
// ============================================================================

// ListenOn 在 /ip4|ip6/<ip>/tcp/<port> 上监听
//
// 绑定同步完成；绑定失败属于资源错误，不是拒绝。
func (t Transport) ListenOn(addr ma.Multiaddr) (interfaces.Listener, ma.Multiaddr, error) {
	tcpAddr, network, ok := parseAddr(addr)
	if !ok {
		return nil, nil, interfaces.Refuse(t, addr)
	}

	lc := net.ListenConfig{KeepAlive: t.config.keepAlive()}
	ln, err := lc.Listen(context.Background(), network, tcpAddr.String())
	if err != nil {
		return nil, nil, fmt.Errorf("tcp: listen %s: %w", addr, err)
	}

	tcpLn, ok := ln.(*net.TCPListener)
	if !ok {
		_ = ln.Close()
		return nil, nil, fmt.Errorf("tcp: listen %s: not a TCP listener", addr)
	}

	bound, err := ma.FromNetAddr(tcpLn.Addr())
	if err != nil {
		_ = tcpLn.Close()
		return nil, nil, fmt.Errorf("tcp: listen %s: %w", addr, err)
	}

	l := newListener(uuid.NewString(), tcpLn, bound, t)
	logger.Debug("TCP 开始监听", "listener", l.id, "addr", bound.String())
	return l, bound, nil
}

// Dial 拨号 /ip4|ip6/<ip>/tcp/<port>
//
// 端口 0 与未指定地址被拒绝。连接在 spawner 上建立。
func (t Transport) Dial(addr ma.Multiaddr) (interfaces.PendingConn, error) {
	tcpAddr, network, ok := dialAddr(addr)
	if !ok {
		return nil, interfaces.Refuse(t, addr)
	}

	return pending.Go(t.spawner, func(ctx context.Context) (interfaces.Conn, error) {
		dialer := net.Dialer{
			Timeout:   t.config.DialTimeout,
			KeepAlive: t.config.keepAlive(),
		}

		c, err := dialer.DialContext(ctx, network, tcpAddr.String())
		if err != nil {
			logger.Debug("TCP 拨号失败", "addr", addr.String(), "err", err)
			return nil, fmt.Errorf("tcp: dial %s: %w", addr, err)
		}

		conn, err := t.wrap(c)
		if err != nil {
			return nil, fmt.Errorf("tcp: dial %s: %w", addr, err)
		}
		return conn, nil
	}), nil
}

// NatTraversal 用观察到的 IP 与服务端的 TCP 端口组成外部地址
func (t Transport) NatTraversal(server, observed ma.Multiaddr) ma.Multiaddr {
	return translate(server, observed)
}

// wrap 包装原始连接，按配置附加带宽统计
func (t Transport) wrap(c net.Conn) (interfaces.Conn, error) {
	conn, err := newConn(c, t.config)
	if err != nil {
		return nil, err
	}
	return metrics.NewCountingConn(conn, t.reporter, layerName), nil
}
