// Package interfaces 定义传输能力的公共接口
//
// 任何一层传输（TCP、DNS 解析、WebSocket 升级、浏览器宿主）以及它们的组合
// 都实现同一个 Transport 契约：
//
//   - transport.go  Transport / Listener / Incoming / PendingConn / Conn
//   - refused.go    RefusedError：拒绝时归还传输与原地址
//
// # 拒绝与失败
//
// 拒绝不是致命错误。调用方通过 AsRefused 取回可用的传输继续尝试：
//
//	pc, err := t.Dial(addr)
//	if refused, ok := interfaces.AsRefused(err); ok {
//	    t = refused.Transport
//	}
//
// 其他错误属于资源错误，由各层原样传递。
package interfaces
