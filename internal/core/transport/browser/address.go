package browser

import (
	"net"
	"net/url"

	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// dialURL 把 /<host>/tcp/<port>/<ws|wss> 转换为 WebSocket URL
func dialURL(addr ma.Multiaddr) (string, bool) {
	comps := ma.Components(addr)
	if len(comps) != 3 || comps[1].Code() != ma.P_TCP {
		return "", false
	}

	switch comps[0].Code() {
	case ma.P_IP4, ma.P_IP6, ma.P_DNS, ma.P_DNS4, ma.P_DNS6:
	default:
		return "", false
	}

	var scheme string
	switch comps[2].Code() {
	case ma.P_WS:
		scheme = "ws"
	case ma.P_WSS:
		scheme = "wss"
	default:
		return "", false
	}

	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(comps[0].Value(), comps[1].Value()),
		Path:   "/",
	}
	return u.String(), true
}

// translate 逐段组合：观察到的 IP、服务端的 TCP 端口、服务端的 ws 标记
//
// 两个地址都必须是 /<ip4|ip6>/<ip>/tcp/<port>/<ws|wss>。
func translate(server, observed ma.Multiaddr) ma.Multiaddr {
	serverComps := ma.Components(server)
	observedComps := ma.Components(observed)
	if len(serverComps) != 3 || len(observedComps) != 3 {
		return nil
	}

	if !isIP(observedComps[0]) || !isIP(serverComps[0]) {
		return nil
	}
	if serverComps[1].Code() != ma.P_TCP || observedComps[1].Code() != ma.P_TCP {
		return nil
	}
	if !isWebSocket(serverComps[2]) || !isWebSocket(observedComps[2]) {
		return nil
	}

	return ma.Join(observedComps[0], serverComps[1], serverComps[2])
}

func isIP(c ma.Component) bool {
	return c.Code() == ma.P_IP4 || c.Code() == ma.P_IP6
}

func isWebSocket(c ma.Component) bool {
	return c.Code() == ma.P_WS || c.Code() == ma.P_WSS
}
