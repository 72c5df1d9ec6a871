package commontransport

import (
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// CommonTransport 跨平台组合传输
//
// 值类型，复制后可独立使用。内层组合对调用方不可见。
type CommonTransport struct {
	inner commonTransportInner
}

// commonTransportInner 持有编译期选定的内层组合
type commonTransportInner struct {
	inner InnerImplementation
}

// 确保实现接口
var _ interfaces.Transport = CommonTransport{}

// wrap 用内层组合构造 CommonTransport
func wrap(inner InnerImplementation) CommonTransport {
	return CommonTransport{inner: commonTransportInner{inner: inner}}
}

// rewrap 拒绝时把归还的内层重新包装
func rewrap(inner InnerImplementation) interfaces.Transport {
	return wrap(inner)
}

// ListenOn 在地址上监听
//
// 成功时返回监听器和解析后的实际地址。
func (t CommonTransport) ListenOn(addr ma.Multiaddr) (interfaces.Listener, ma.Multiaddr, error) {
	return delegateListen(t.inner.inner, addr, rewrap)
}

// Dial 拨号到地址
//
// 返回的 PendingConn 在内层的执行上下文中推进。
func (t CommonTransport) Dial(addr ma.Multiaddr) (interfaces.PendingConn, error) {
	return delegateDial(t.inner.inner, addr, rewrap)
}

// NatTraversal 由内层推算外部可达地址
func (t CommonTransport) NatTraversal(server, observed ma.Multiaddr) ma.Multiaddr {
	return t.inner.inner.NatTraversal(server, observed)
}
