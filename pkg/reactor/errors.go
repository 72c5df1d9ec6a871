package reactor

import "errors"

var (
	// ErrReactorClosed 执行上下文已关闭
	ErrReactorClosed = errors.New("reactor closed")
)
