package pending

import (
	"context"
	"errors"
	"sync"

	"github.com/dep2p/go-commontransport/pkg/interfaces"
)

// ErrSpawnerClosed 执行上下文已关闭，任务无法启动
var ErrSpawnerClosed = errors.New("spawner closed")

// Spawner 任务执行者
//
// reactor.Reactor 实现该接口。
type Spawner interface {
	Go(fn func(ctx context.Context) error) bool
}

// Conn 延迟解析的连接
//
// 在 Spawner 上建立的连接如果在执行上下文结束前没有被 Wait 取走，会被关闭。
type Conn struct {
	done    chan struct{}
	claimCh chan struct{}

	mu        sync.Mutex
	conn      interfaces.Conn
	err       error
	abandoned bool
	claimed   bool
}

// 确保实现接口
var _ interfaces.PendingConn = (*Conn)(nil)

func newConn() *Conn {
	return &Conn{
		done:    make(chan struct{}),
		claimCh: make(chan struct{}),
	}
}

// Go 在 spawner 上执行 fn，返回其结果的句柄
//
// spawner 为 nil 时使用独立 goroutine 和 background context。
func Go(spawner Spawner, fn func(ctx context.Context) (interfaces.Conn, error)) *Conn {
	p := newConn()

	if spawner == nil {
		go func() {
			p.resolve(fn(context.Background()))
		}()
		return p
	}

	ok := spawner.Go(func(ctx context.Context) error {
		p.resolve(fn(ctx))
		p.closeUnclaimed(ctx)
		return nil
	})
	if !ok {
		p.resolve(nil, ErrSpawnerClosed)
	}
	return p
}

// Ready 返回已经解析为 conn 的句柄
func Ready(conn interfaces.Conn) *Conn {
	p := newConn()
	p.resolve(conn, nil)
	return p
}

// Failed 返回已经解析为 err 的句柄
func Failed(err error) *Conn {
	p := newConn()
	p.resolve(nil, err)
	return p
}

// Then 在 prev 成功后继续执行 next
//
// prev 失败时直接返回其错误；next 失败时由 next 负责关闭传入的连接。
func Then(prev interfaces.PendingConn, spawner Spawner, next func(ctx context.Context, conn interfaces.Conn) (interfaces.Conn, error)) *Conn {
	return Go(spawner, func(ctx context.Context) (interfaces.Conn, error) {
		conn, err := prev.Wait(ctx)
		if err != nil {
			return nil, err
		}
		return next(ctx, conn)
	})
}

// Wait 等待连接建立
func (p *Conn) Wait(ctx context.Context) (interfaces.Conn, error) {
	select {
	case <-p.done:
		return p.claim()
	default:
	}

	select {
	case <-p.done:
		return p.claim()
	case <-ctx.Done():
		if p.abandon() {
			return nil, ctx.Err()
		}
		return p.claim()
	}
}

// Done 返回结果就绪时关闭的通道
func (p *Conn) Done() <-chan struct{} {
	return p.done
}

// claim 取走结果，之后连接的生命周期归调用方
func (p *Conn) claim() (interfaces.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil && !p.claimed {
		p.claimed = true
		close(p.claimCh)
	}
	return p.conn, p.err
}

// closeUnclaimed 等到连接被取走；ctx 先结束时关闭连接
func (p *Conn) closeUnclaimed(ctx context.Context) {
	p.mu.Lock()
	idle := p.conn == nil || p.claimed
	p.mu.Unlock()
	if idle {
		return
	}

	select {
	case <-p.claimCh:
		return
	case <-ctx.Done():
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.claimed || p.conn == nil {
		return
	}
	_ = p.conn.Close()
	p.conn, p.err = nil, ErrSpawnerClosed
}

func (p *Conn) resolve(conn interfaces.Conn, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.abandoned {
		if conn != nil {
			_ = conn.Close()
		}
		conn, err = nil, context.Canceled
	}
	p.conn, p.err = conn, err
	close(p.done)
}

// abandon 标记放弃；结果已经就绪时返回 false
func (p *Conn) abandon() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.done:
		return false
	default:
		p.abandoned = true
		return true
	}
}
