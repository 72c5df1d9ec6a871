package tcp

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/dep2p/go-commontransport/internal/core/transport/pending"
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// ============================================================================
//                              Listener 实现
// ============================================================================

// Listener TCP 监听器
type Listener struct {
	id        string
	ln        *net.TCPListener
	addr      ma.Multiaddr
	transport Transport

	startOnce sync.Once
	incoming  chan interfaces.Incoming

	// done 在接收循环退出时关闭，err 在此之前写入
	done chan struct{}
	err  error

	closeOnce sync.Once
	closed    chan struct{}
	closeErr  error
}

// 确保实现接口
var _ interfaces.Listener = (*Listener)(nil)

func newListener(id string, ln *net.TCPListener, addr ma.Multiaddr, t Transport) *Listener {
	return &Listener{
		id:        id,
		ln:        ln,
		addr:      addr,
		transport: t,
		incoming:  make(chan interfaces.Incoming),
		done:      make(chan struct{}),
		closed:    make(chan struct{}),
	}
}

// Accept 返回下一个入站连接
//
// 第一次调用时启动接收循环。TCP 层没有升级步骤，Upgrade 立即就绪。
func (l *Listener) Accept(ctx context.Context) (interfaces.Incoming, error) {
	l.startOnce.Do(l.start)

	select {
	case <-l.closed:
		return interfaces.Incoming{}, interfaces.ErrListenerClosed
	default:
	}

	select {
	case in := <-l.incoming:
		return in, nil
	case <-l.done:
		return interfaces.Incoming{}, l.err
	case <-l.closed:
		return interfaces.Incoming{}, interfaces.ErrListenerClosed
	case <-ctx.Done():
		return interfaces.Incoming{}, ctx.Err()
	}
}

// Multiaddr 返回实际绑定的地址
func (l *Listener) Multiaddr() ma.Multiaddr {
	return l.addr
}

// Close 关闭监听器
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.closed)
		l.closeErr = l.ln.Close()
		logger.Debug("TCP 监听器已关闭", "listener", l.id, "addr", l.addr.String())
	})
	return l.closeErr
}

// ID 返回监听器标识
func (l *Listener) ID() string {
	return l.id
}

func (l *Listener) start() {
	if l.transport.spawner == nil {
		go func() { _ = l.acceptLoop(context.Background()) }()
		return
	}
	if !l.transport.spawner.Go(l.acceptLoop) {
		l.err = pending.ErrSpawnerClosed
		close(l.done)
	}
}

func (l *Listener) acceptLoop(ctx context.Context) error {
	defer close(l.done)

	// reactor 关闭时监听器随之关闭，阻塞的 Accept 才能返回
	stop := context.AfterFunc(ctx, func() { _ = l.Close() })
	defer stop()

	for {
		c, err := l.ln.Accept()
		if err != nil {
			if l.isClosed() {
				l.err = interfaces.ErrListenerClosed
			} else {
				l.err = fmt.Errorf("tcp: accept on %s: %w", l.addr, err)
				logger.Debug("TCP 接收失败", "listener", l.id, "err", err)
			}
			return nil
		}

		conn, err := l.transport.wrap(c)
		if err != nil {
			logger.Debug("TCP 包装入站连接失败", "listener", l.id, "err", err)
			continue
		}

		in := interfaces.Incoming{
			Upgrade:    pending.Ready(conn),
			RemoteAddr: conn.RemoteMultiaddr(),
		}

		select {
		case l.incoming <- in:
		case <-l.closed:
			_ = conn.Close()
			l.err = interfaces.ErrListenerClosed
			return nil
		}
	}
}

func (l *Listener) isClosed() bool {
	select {
	case <-l.closed:
		return true
	default:
		return false
	}
}
