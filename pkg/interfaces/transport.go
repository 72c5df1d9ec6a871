package interfaces

import (
	"context"
	"net"

	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// Transport 定义传输能力接口
//
// 实现为小的值类型（配置 + 共享协作者引用），复制即得到一份可独立使用的配置。
//
// ListenOn / Dial 无法处理某个地址时返回 *RefusedError，
// 其中携带一个可继续使用的传输值以及原样的地址，调用方可以换地址或换传输重试。
// 其它错误（如端口绑定失败）属于该层的资源错误，各层原样向上传递。
type Transport interface {
	// ListenOn 在地址上开始监听
	//
	// 返回监听器以及实际绑定的地址（通配端口会被解析为具体端口）。
	ListenOn(addr ma.Multiaddr) (Listener, ma.Multiaddr, error)

	// Dial 向地址发起连接
	//
	// 返回一个延迟解析的连接句柄，不会阻塞等待连接建立。
	Dial(addr ma.Multiaddr) (PendingConn, error)

	// NatTraversal 根据服务端地址与对端观察到的地址，推算本端可被公网拨号的地址
	//
	// 纯函数：不修改传输，无副作用。没有结论时返回 nil。
	NatTraversal(server, observed ma.Multiaddr) ma.Multiaddr
}

// Listener 入站连接序列
//
// 惰性、无界；只允许一个消费者，关闭或底层出错后终止。
type Listener interface {
	// Accept 返回下一个入站事件
	//
	// 监听器关闭后返回 ErrListenerClosed。
	Accept(ctx context.Context) (Incoming, error)

	// Multiaddr 返回实际绑定的地址
	Multiaddr() ma.Multiaddr

	// Close 关闭监听器并释放底层资源
	Close() error
}

// Incoming 入站连接事件
//
// 各层的升级在 Accept 返回后立即开始。调用方不需要该连接时应对 Upgrade
// 调用 Wait 并关闭结果；一直没有被 Wait 的连接在执行上下文关闭时被回收。
type Incoming struct {
	// Upgrade 完成该连接在各层的升级后得到最终连接
	Upgrade PendingConn

	// RemoteAddr 对端地址（已按各层格式封装）
	RemoteAddr ma.Multiaddr
}

// PendingConn 延迟解析的连接
//
// 结果只产生一次。Wait 的 ctx 被取消即视为放弃该句柄，
// 之后才建立的连接会被句柄自行关闭。
type PendingConn interface {
	// Wait 等待连接建立
	Wait(ctx context.Context) (Conn, error)
}

// Conn 传输层连接
type Conn interface {
	net.Conn

	// LocalMultiaddr 返回本地多地址
	LocalMultiaddr() ma.Multiaddr

	// RemoteMultiaddr 返回远端多地址
	RemoteMultiaddr() ma.Multiaddr
}
