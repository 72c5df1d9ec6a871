package multiaddr

// Split 分离传输地址和 P2P 组件
// 输入：/ip4/1.2.3.4/tcp/4001/p2p/QmYyQ...
// 输出：/ip4/1.2.3.4/tcp/4001, QmYyQ...
func Split(m Multiaddr) (transport Multiaddr, peerID string) {
	comps := Components(m)
	for i, c := range comps {
		if c.Code() == P_P2P {
			return Join(comps[:i]...), c.Value()
		}
	}
	return m, ""
}

// JoinPeer 合并传输地址和 P2P 组件
func JoinPeer(transport Multiaddr, peerID string) Multiaddr {
	if peerID == "" {
		return transport
	}

	p2p, err := NewComponent("p2p", peerID)
	if err != nil {
		// 无法编码时只返回传输地址
		return transport
	}
	if transport == nil {
		return Join(p2p)
	}
	return transport.Encapsulate(Join(p2p))
}

// WithoutPeerID 移除多地址中的 PeerID
func WithoutPeerID(m Multiaddr) Multiaddr {
	transport, _ := Split(m)
	return transport
}

// GetPeerID 从多地址中提取 PeerID
func GetPeerID(m Multiaddr) (string, error) {
	_, peerID := Split(m)
	if peerID == "" {
		return "", ErrNoPeerID
	}
	return peerID, nil
}

// FilterAddrs 过滤多地址列表
func FilterAddrs(addrs []Multiaddr, filter func(Multiaddr) bool) []Multiaddr {
	result := make([]Multiaddr, 0, len(addrs))
	for _, addr := range addrs {
		if filter(addr) {
			result = append(result, addr)
		}
	}
	return result
}

// UniqueAddrs 去重多地址列表（保持顺序）
func UniqueAddrs(addrs []Multiaddr) []Multiaddr {
	seen := make(map[string]bool)
	result := make([]Multiaddr, 0, len(addrs))

	for _, addr := range addrs {
		k := string(addr.Bytes())
		if !seen[k] {
			seen[k] = true
			result = append(result, addr)
		}
	}

	return result
}

// HasProtocol 检查多地址是否包含指定协议
func HasProtocol(m Multiaddr, code int) bool {
	found := false
	ForEach(m, func(c Component) bool {
		found = c.Code() == code
		return !found
	})
	return found
}

// IsTCPMultiaddr 检查是否为 TCP 多地址
func IsTCPMultiaddr(m Multiaddr) bool {
	return HasProtocol(m, P_TCP)
}

// IsIPMultiaddr 检查是否包含 IP（IPv4 或 IPv6）
func IsIPMultiaddr(m Multiaddr) bool {
	return HasProtocol(m, P_IP4) || HasProtocol(m, P_IP6)
}
