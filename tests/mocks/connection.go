package mocks

import (
	"context"
	"net"
	"sync/atomic"

	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// MockConn 模拟 Conn 接口实现
//
// 读写走 net.Pipe，关闭状态可查询。
type MockConn struct {
	net.Conn

	LocalAddrValue  ma.Multiaddr
	RemoteAddrValue ma.Multiaddr

	closed atomic.Bool
}

// 确保实现接口
var _ interfaces.Conn = (*MockConn)(nil)

// NewMockConnPair 创建一对相连的 MockConn
func NewMockConnPair(local, remote ma.Multiaddr) (*MockConn, *MockConn) {
	a, b := net.Pipe()
	return &MockConn{Conn: a, LocalAddrValue: local, RemoteAddrValue: remote},
		&MockConn{Conn: b, LocalAddrValue: remote, RemoteAddrValue: local}
}

// LocalMultiaddr 返回本地地址
func (c *MockConn) LocalMultiaddr() ma.Multiaddr {
	return c.LocalAddrValue
}

// RemoteMultiaddr 返回远端地址
func (c *MockConn) RemoteMultiaddr() ma.Multiaddr {
	return c.RemoteAddrValue
}

// Close 关闭连接
func (c *MockConn) Close() error {
	c.closed.Store(true)
	return c.Conn.Close()
}

// IsClosed 检查是否已关闭
func (c *MockConn) IsClosed() bool {
	return c.closed.Load()
}

// ============================================================================
//                              MockPendingConn
// ============================================================================

// MockPendingConn 模拟 PendingConn 接口实现
type MockPendingConn struct {
	Conn interfaces.Conn
	Err  error

	// WaitFunc 设置后覆盖默认行为
	WaitFunc func(ctx context.Context) (interfaces.Conn, error)
}

// 确保实现接口
var _ interfaces.PendingConn = (*MockPendingConn)(nil)

// Wait 返回预设结果
func (p *MockPendingConn) Wait(ctx context.Context) (interfaces.Conn, error) {
	if p.WaitFunc != nil {
		return p.WaitFunc(ctx)
	}
	return p.Conn, p.Err
}
