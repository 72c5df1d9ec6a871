package tcp

import "errors"

var (
	// ErrNotTCPConn 底层连接不是 TCP 连接
	ErrNotTCPConn = errors.New("tcp: not a TCP connection")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("tcp: invalid config")
)
