package transport

import "errors"

var (
	// ErrInvalidConfig 无效配置
	ErrInvalidConfig = errors.New("invalid transport config")

	// ErrNoReactor 未提供执行上下文
	ErrNoReactor = errors.New("transport stack requires a reactor")
)
