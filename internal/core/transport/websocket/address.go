package websocket

import (
	"net"
	"net/url"

	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

func isWebSocket(c ma.Component) bool {
	return c.Code() == ma.P_WS || c.Code() == ma.P_WSS
}

// splitWebSocket 分离末尾的 /ws 或 /wss 段
func splitWebSocket(addr ma.Multiaddr) (ma.Multiaddr, ma.Component, bool) {
	head, last := ma.SplitLast(addr)
	if head == nil || !isWebSocket(last) {
		return nil, ma.Component{}, false
	}
	return head, last, true
}

// handshakeURL 由去掉 /ws 段后的地址构建握手 URL
//
// 地址必须是 /<ip4|ip6|dns|dns4|dns6>/<host>/tcp/<port>。
func handshakeURL(head ma.Multiaddr, secure bool) (*url.URL, bool) {
	comps := ma.Components(head)
	if len(comps) != 2 || comps[1].Code() != ma.P_TCP {
		return nil, false
	}
	switch comps[0].Code() {
	case ma.P_IP4, ma.P_IP6, ma.P_DNS, ma.P_DNS4, ma.P_DNS6:
	default:
		return nil, false
	}

	scheme := "ws"
	if secure {
		scheme = "wss"
	}
	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(comps[0].Value(), comps[1].Value()),
		Path:   "/",
	}, true
}
