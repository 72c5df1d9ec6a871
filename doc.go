// Package commontransport 提供跨平台的组合传输
//
// CommonTransport 把一组独立的传输层叠加为一个传输，对外只暴露
// interfaces.Transport 的三个操作：ListenOn、Dial 和 NatTraversal。
//
// # 平台变体
//
// 内层实现在编译期选择，没有运行时分支：
//
//	原生构建 (!js)   WS<DNS<TCP>>，由 *reactor.Reactor 驱动
//	受限宿主 (js)    宿主提供的浏览器 WebSocket 传输，不可监听
//
// 两种变体使用相同的句柄类型，调用方只依赖 CommonTransport 这一个名字。
//
// # 失败即归还
//
// 某一层不支持地址时返回 *interfaces.RefusedError，其中 Transport 是一个新的、
// 仍然可用的 CommonTransport，Addr 是原样的地址：
//
//	pc, err := ct.Dial(addr)
//	if refused, ok := interfaces.AsRefused(err); ok {
//	    ct = refused.Transport.(commontransport.CommonTransport)
//	    // 换一个地址重试
//	}
//
// 其他错误（绑定失败、reactor 已关闭）原样返回。CommonTransport 本身不记录日志。
//
// # 使用示例
//
//	rt := reactor.New(ctx)
//	defer rt.Close()
//
//	ct := commontransport.New(rt)
//	ln, bound, err := ct.ListenOn(ma.StringCast("/ip4/0.0.0.0/tcp/0/ws"))
//
//	pc, err := ct.Dial(ma.StringCast("/dns4/example.com/tcp/443/wss"))
//	conn, err := pc.Wait(ctx)
//
// # Fx 模块集成
//
//	app := fx.New(
//	    commontransport.Module(config.NewConfig()),
//	    fx.Invoke(func(ct commontransport.CommonTransport) {
//	        // 使用组合传输
//	    }),
//	)
package commontransport
