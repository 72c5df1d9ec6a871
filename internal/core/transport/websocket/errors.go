package websocket

import "errors"

var (
	// ErrHandshakeTimeout 握手超时
	ErrHandshakeTimeout = errors.New("websocket: handshake timeout")

	// ErrHandshakeFailed 握手失败
	ErrHandshakeFailed = errors.New("websocket: handshake failed")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("websocket: invalid config")
)
