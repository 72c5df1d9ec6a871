package tcp

import (
	"net"
	"strconv"

	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// parseAddr 解析 /ip4|ip6/<ip>/tcp/<port>
//
// 多出或不同的段都视为不支持。
func parseAddr(addr ma.Multiaddr) (*net.TCPAddr, string, bool) {
	comps := ma.Components(addr)
	if len(comps) != 2 {
		return nil, "", false
	}

	var network string
	switch comps[0].Code() {
	case ma.P_IP4:
		network = "tcp4"
	case ma.P_IP6:
		network = "tcp6"
	default:
		return nil, "", false
	}
	if comps[1].Code() != ma.P_TCP {
		return nil, "", false
	}

	ip := net.ParseIP(comps[0].Value())
	port, err := strconv.Atoi(comps[1].Value())
	if ip == nil || err != nil {
		return nil, "", false
	}
	return &net.TCPAddr{IP: ip, Port: port}, network, true
}

// dialAddr 在 parseAddr 的基础上拒绝端口 0 与未指定地址
func dialAddr(addr ma.Multiaddr) (*net.TCPAddr, string, bool) {
	tcpAddr, network, ok := parseAddr(addr)
	if !ok {
		return nil, "", false
	}
	if tcpAddr.Port == 0 || tcpAddr.IP.IsUnspecified() {
		return nil, "", false
	}
	return tcpAddr, network, true
}

// isTCPPrefix 检查地址是否以 IP 段 + TCP 段开头
func isTCPPrefix(comps []ma.Component) bool {
	if len(comps) < 2 {
		return false
	}
	switch comps[0].Code() {
	case ma.P_IP4, ma.P_IP6:
	default:
		return false
	}
	return comps[1].Code() == ma.P_TCP
}

// translate 用观察到的 IP 替换服务端地址中的 IP
//
// 两个地址都必须以 IP 段 + TCP 段开头，否则返回 nil。
func translate(server, observed ma.Multiaddr) ma.Multiaddr {
	serverComps := ma.Components(server)
	observedComps := ma.Components(observed)
	if !isTCPPrefix(serverComps) || !isTCPPrefix(observedComps) {
		return nil
	}

	out := make([]ma.Component, 0, len(serverComps))
	out = append(out, observedComps[0])
	out = append(out, serverComps[1:]...)
	return ma.Join(out...)
}
