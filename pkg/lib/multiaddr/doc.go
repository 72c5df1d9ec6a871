// Package multiaddr 提供多地址（Multiaddr）的实现
//
// Multiaddr 是一种自描述的网络地址格式：一串有序的“协议/值”组件。
// 传输层的每一层只消费属于自己的组件，把剩余部分交给下一层。
//
// # 基本用法
//
//	ma, err := multiaddr.NewMultiaddr("/ip4/127.0.0.1/tcp/4001/ws")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 剥离最后一个组件（例如升级层的 /ws）
//	inner, last := multiaddr.SplitLast(ma)
//	// inner = /ip4/127.0.0.1/tcp/4001, last = /ws
//
//	// 重新封装
//	outer := inner.Encapsulate(last.Multiaddr())
//
// # 支持的协议
//
//   - IP4/IP6/IP6ZONE: IP 地址
//   - TCP/UDP: 传输层端口
//   - DNS/DNS4/DNS6/DNSADDR: 域名
//   - WS/WSS: WebSocket
//   - P2P: 节点 ID（base58）
//   - TLS/HTTP/HTTPS/QUIC-V1/P2P-CIRCUIT/UNIX
//
// # 二进制格式
//
//	[varint:protocol_code][varint:length][data_bytes]...
//
// 协议代码与 multiformats/multicodec 对齐，varint 编码使用 go-varint。
package multiaddr
