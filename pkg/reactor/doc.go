// Package reactor 提供原生传输栈所需的执行上下文
//
// TCP 层的 accept 循环、各层的拨号与握手都作为任务运行在 Reactor 上。
// 调用方创建 Reactor 并在构造组合传输时传入；关闭 Reactor 会取消并等待全部任务。
//
// # 使用示例
//
//	rt := reactor.New(context.Background())
//	defer rt.Close()
//
//	t := commontransport.New(rt)
//
// # 并发安全
//
// 所有方法都可并发调用。Close 之后 Go 返回 false，任务不会被启动。
package reactor
