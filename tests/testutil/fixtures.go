// Package testutil 提供测试辅助工具
package testutil

// 测试数据固件
//
// 提供测试中常用的常量值，确保测试一致性。

const (
	// DefaultListenAddr 默认监听地址
	//
	// 回环地址加通配端口，由 TCP 层解析为具体端口。
	DefaultListenAddr = "/ip4/127.0.0.1/tcp/0/ws"

	// DefaultTestHost 测试 DNS 服务器应答的域名
	DefaultTestHost = "echo.commontransport.test"

	// DefaultTestPayload 默认测试负载
	DefaultTestPayload = "hello commontransport"
)
