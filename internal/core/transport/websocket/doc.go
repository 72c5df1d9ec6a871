// Package websocket 实现 WebSocket 升级传输层
//
// websocket 层包装一个内层流传输（通常是 dns → tcp），
// 消费地址末尾的 /ws 或 /wss 段，在内层连接之上完成 WebSocket 握手。
//
// # 地址格式
//
//	/ip4/1.2.3.4/tcp/80/ws
//	/dns4/example.com/tcp/443/wss
//
// 监听只支持 /ws；拨号支持 /ws 与 /wss（TLS，SNI 取自地址中的主机名）。
//
// # 连接语义
//
// 升级后的连接实现 net.Conn：每次 Write 发送一个二进制消息，
// Read 按顺序读取消息内容，对端正常关闭表现为 io.EOF。
//
// # 握手超时
//
// 握手期间由时钟驱动的看门狗在超时后关闭底层连接，时钟可替换，便于测试。
package websocket
