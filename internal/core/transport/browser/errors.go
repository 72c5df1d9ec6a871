package browser

import "errors"

var (
	// ErrNoHostDialer 未提供宿主 WebSocket 能力
	ErrNoHostDialer = errors.New("browser: no host websocket dialer")
)
