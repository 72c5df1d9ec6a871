// Package mocks 提供统一的测试 Mock 实现
//
// # 传输 Mock
//
//   - MockTransport: 模拟 interfaces.Transport，方法可通过函数字段覆盖
//   - MockListener: 模拟 interfaces.Listener，入站事件通过通道注入
//
// # 连接 Mock
//
//   - MockConn: 基于 net.Pipe 的 interfaces.Conn，记录关闭状态
//   - MockPendingConn: 模拟 interfaces.PendingConn
//
// # 解析 Mock
//
//   - MockResolver: mockgen 生成的 dns.Resolver，配合 gomock.Controller 设置期望
//
// 使用示例：
//
//	inner := mocks.NewMockTransport()
//	inner.DialFunc = func(addr ma.Multiaddr) (interfaces.PendingConn, error) {
//	    return nil, interfaces.Refuse(inner, addr)
//	}
package mocks
