// Package transport 组装原生传输栈
//
// 按固定顺序把三层传输叠加为 WS<DNS<TCP>>：
//
//	tcp.Transport        最内层，只接受 /ip4|ip6/.../tcp/...
//	dns.Transport        拨号前把 /dns* 段解析为 IP，监听原样下传
//	websocket.Transport  最外层，剥离 /ws|/wss 后下传并在其上完成升级
//
// 每层都是值类型，内层由外层持有；某层拒绝地址时返回
// interfaces.RefusedError，外层把归还的内层重新包装后继续上抛。
//
// # 使用示例
//
//	rt := reactor.New(context.Background())
//	defer rt.Close()
//
//	stack := transport.NewStack(rt, transport.NewConfig(), nil)
//	ln, addr, err := stack.ListenOn(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
//
// # Fx 模块集成
//
//	app := fx.New(
//	    fx.Supply(rt),
//	    transport.Module(),
//	    fx.Invoke(func(stack websocket.Transport) {
//	        // 使用传输栈
//	    }),
//	)
package transport
