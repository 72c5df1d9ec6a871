// Package tcp 实现 TCP 传输层
//
// tcp 是组合传输的最内层，直接使用操作系统的 TCP 套接字。
//
// # 地址格式
//
//	/ip4/1.2.3.4/tcp/4001
//	/ip6/::1/tcp/4001
//
// 只接受恰好由 IP 段和 TCP 段组成的地址，其余地址一律拒绝并原样归还。
// 拨号时端口 0 与未指定地址（0.0.0.0、::）同样被拒绝。
//
// # 使用示例
//
//	rt := reactor.New(ctx)
//	transport := tcp.NewTransport(rt, tcp.DefaultConfig())
//
//	// 监听（端口 0 会被解析为实际端口）
//	listener, bound, err := transport.ListenOn(addr)
//
//	// 拨号
//	pc, err := transport.Dial(addr)
//	conn, err := pc.Wait(ctx)
//
// # 执行模型
//
// 拨号与接收循环都运行在 Spawner（reactor）上。
// 接收循环在第一次 Accept 时启动；reactor 关闭时监听器随之关闭。
package tcp
