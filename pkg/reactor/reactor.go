package reactor

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-commontransport/pkg/lib/log"
)

var logger = log.Logger("reactor")

// Reactor 执行上下文
type Reactor struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	group  errgroup.Group

	errMu sync.Mutex
	errs  error
}

// New 创建执行上下文
//
// parent 被取消时，所有任务收到的 ctx 同样被取消，但 Reactor 仍需 Close 才会拒绝新任务。
func New(parent context.Context) *Reactor {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Reactor{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context 返回任务共享的上下文
func (r *Reactor) Context() context.Context {
	return r.ctx
}

// Go 在执行上下文中启动任务
//
// 返回 false 表示 Reactor 已关闭，任务未启动。
// 任务返回的错误（除 context 取消外）会在 Close 时合并返回。
func (r *Reactor) Go(fn func(ctx context.Context) error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}

	r.group.Go(func() error {
		if err := fn(r.ctx); err != nil && !isCancellation(err) {
			r.errMu.Lock()
			r.errs = multierr.Append(r.errs, err)
			r.errMu.Unlock()
		}
		return nil
	})
	return true
}

// Closed 是否已关闭
func (r *Reactor) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close 取消所有任务并等待其退出
//
// 返回任务运行期间累积的错误。重复调用返回 nil。
func (r *Reactor) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	_ = r.group.Wait()

	r.errMu.Lock()
	defer r.errMu.Unlock()

	if r.errs != nil {
		logger.Debug("执行上下文关闭时存在任务错误", "count", len(multierr.Errors(r.errs)))
	}
	return r.errs
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
