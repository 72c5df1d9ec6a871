package multiaddr

import (
	"fmt"
	"net"
	"strconv"
)

// ToTCPAddr 将 /ip4|ip6/.../tcp/... 多地址转换为 *net.TCPAddr
func (m *multiaddr) ToTCPAddr() (*net.TCPAddr, error) {
	comps := Components(m)
	if len(comps) < 2 {
		return nil, fmt.Errorf("%w: not a TCP address: %s", ErrInvalidMultiaddr, m)
	}

	var ipStr string
	switch comps[0].Code() {
	case P_IP4, P_IP6:
		ipStr = comps[0].Value()
	default:
		return nil, fmt.Errorf("no IP address in multiaddr %s", m)
	}
	if comps[1].Code() != P_TCP {
		return nil, fmt.Errorf("no TCP port in multiaddr %s", m)
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address: %s", ipStr)
	}
	port, err := strconv.Atoi(comps[1].Value())
	if err != nil {
		return nil, fmt.Errorf("invalid port: %s", comps[1].Value())
	}

	return &net.TCPAddr{IP: ip, Port: port}, nil
}

// FromTCPAddr 从 *net.TCPAddr 创建多地址
func FromTCPAddr(addr *net.TCPAddr) (Multiaddr, error) {
	if addr == nil {
		return nil, fmt.Errorf("nil TCP address")
	}
	ipc, err := FromIP(addr.IP)
	if err != nil {
		return nil, err
	}
	tcp, err := NewComponent("tcp", strconv.Itoa(addr.Port))
	if err != nil {
		return nil, err
	}
	return Join(ipc, tcp), nil
}

// FromIP 从 net.IP 创建 ip4 或 ip6 组件
func FromIP(ip net.IP) (Component, error) {
	if ip4 := ip.To4(); ip4 != nil {
		return NewComponent("ip4", ip4.String())
	}
	if ip16 := ip.To16(); ip16 != nil {
		return NewComponent("ip6", ip16.String())
	}
	return Component{}, fmt.Errorf("invalid IP address: %v", ip)
}

// FromNetAddr 从 net.Addr 创建多地址
func FromNetAddr(addr net.Addr) (Multiaddr, error) {
	if addr == nil {
		return nil, fmt.Errorf("nil address")
	}

	switch a := addr.(type) {
	case *net.TCPAddr:
		return FromTCPAddr(a)
	default:
		return nil, fmt.Errorf("unsupported address type: %T", addr)
	}
}
