//go:build js

package browser

import (
	"context"
	"net"

	"github.com/coder/websocket"
)

// DefaultHostDialer 使用浏览器 WebSocket API 的宿主能力
var DefaultHostDialer HostDialer = HostDialerFunc(dialBrowser)

func dialBrowser(ctx context.Context, url string) (net.Conn, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	// NetConn 的生命周期绑定 ctx，这里使用独立的 context
	return websocket.NetConn(context.Background(), c, websocket.MessageBinary), nil
}

// NewDefaultTransport 使用浏览器 WebSocket API 创建传输
func NewDefaultTransport() Transport {
	return NewTransport(DefaultHostDialer)
}
