package mocks

import (
	"context"
	"sync"

	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// MockTransport 模拟 Transport 接口实现
//
// 未设置函数字段时：ListenOn 返回以 addr 为地址的 MockListener，
// Dial 返回一端 MockConn，NatTraversal 返回 nil。
type MockTransport struct {
	// Name 便于测试中区分不同实例
	Name string

	// 可覆盖的方法
	ListenOnFunc     func(addr ma.Multiaddr) (interfaces.Listener, ma.Multiaddr, error)
	DialFunc         func(addr ma.Multiaddr) (interfaces.PendingConn, error)
	NatTraversalFunc func(server, observed ma.Multiaddr) ma.Multiaddr

	mu sync.Mutex
	// 调用记录
	ListenCalls []ma.Multiaddr
	DialCalls   []ma.Multiaddr
	NatCalls    []NatCall
}

// NatCall 记录 NatTraversal 调用
type NatCall struct {
	Server   ma.Multiaddr
	Observed ma.Multiaddr
}

// 确保实现接口
var _ interfaces.Transport = (*MockTransport)(nil)

// NewMockTransport 创建带有默认值的 MockTransport
func NewMockTransport() *MockTransport {
	return &MockTransport{Name: "mock"}
}

// ListenOn 监听地址
func (m *MockTransport) ListenOn(addr ma.Multiaddr) (interfaces.Listener, ma.Multiaddr, error) {
	m.mu.Lock()
	m.ListenCalls = append(m.ListenCalls, addr)
	m.mu.Unlock()

	if m.ListenOnFunc != nil {
		return m.ListenOnFunc(addr)
	}
	return NewMockListener(addr), addr, nil
}

// Dial 拨号
func (m *MockTransport) Dial(addr ma.Multiaddr) (interfaces.PendingConn, error) {
	m.mu.Lock()
	m.DialCalls = append(m.DialCalls, addr)
	m.mu.Unlock()

	if m.DialFunc != nil {
		return m.DialFunc(addr)
	}
	local, _ := NewMockConnPair(nil, addr)
	return &MockPendingConn{Conn: local}, nil
}

// NatTraversal 推算外部地址
func (m *MockTransport) NatTraversal(server, observed ma.Multiaddr) ma.Multiaddr {
	m.mu.Lock()
	m.NatCalls = append(m.NatCalls, NatCall{Server: server, Observed: observed})
	m.mu.Unlock()

	if m.NatTraversalFunc != nil {
		return m.NatTraversalFunc(server, observed)
	}
	return nil
}

// DialCount 返回 Dial 调用次数
func (m *MockTransport) DialCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DialCalls)
}

// ListenCount 返回 ListenOn 调用次数
func (m *MockTransport) ListenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ListenCalls)
}

// ============================================================================
//                              MockListener
// ============================================================================

// MockListener 模拟 Listener 接口实现
type MockListener struct {
	AddrValue ma.Multiaddr

	// Incoming 向监听器注入入站事件
	Incoming chan interfaces.Incoming

	closeOnce sync.Once
	closed    chan struct{}
}

// 确保实现接口
var _ interfaces.Listener = (*MockListener)(nil)

// NewMockListener 创建 MockListener
func NewMockListener(addr ma.Multiaddr) *MockListener {
	return &MockListener{
		AddrValue: addr,
		Incoming:  make(chan interfaces.Incoming, 16),
		closed:    make(chan struct{}),
	}
}

// Accept 返回下一个入站事件
func (l *MockListener) Accept(ctx context.Context) (interfaces.Incoming, error) {
	select {
	case in := <-l.Incoming:
		return in, nil
	case <-l.closed:
		return interfaces.Incoming{}, interfaces.ErrListenerClosed
	case <-ctx.Done():
		return interfaces.Incoming{}, ctx.Err()
	}
}

// Multiaddr 返回监听地址
func (l *MockListener) Multiaddr() ma.Multiaddr {
	return l.AddrValue
}

// Close 关闭监听器
func (l *MockListener) Close() error {
	l.closeOnce.Do(func() { close(l.closed) })
	return nil
}

// IsClosed 检查是否已关闭
func (l *MockListener) IsClosed() bool {
	select {
	case <-l.closed:
		return true
	default:
		return false
	}
}
