package config

import (
	"errors"
	"time"
)

// TransportConfig 传输层配置
//
// 组合传输由三层构成，每层一个子配置：
//   - TCP: 最内层流传输
//   - DNS: 拨号前的名称解析
//   - WebSocket: 最外层协议升级
type TransportConfig struct {
	// TCP 配置
	TCP TCPConfig `json:"tcp"`

	// DNS 解析配置
	DNS DNSConfig `json:"dns"`

	// WebSocket 配置
	WebSocket WebSocketConfig `json:"websocket"`

	// DialTimeout 拨号超时（TCP 建连）
	DialTimeout Duration `json:"dial_timeout"`
}

// TCPConfig TCP 传输配置
type TCPConfig struct {
	// KeepAlive 是否启用 TCP KeepAlive
	KeepAlive bool `json:"keep_alive"`

	// KeepAlivePeriod KeepAlive 周期
	KeepAlivePeriod Duration `json:"keep_alive_period"`

	// NoDelay 是否禁用 Nagle 算法
	NoDelay bool `json:"no_delay"`
}

// DNSConfig DNS 解析配置
type DNSConfig struct {
	// Servers 自定义 DNS 服务器（格式: "ip:port"），为空时读取 ResolvConf
	Servers []string `json:"servers,omitempty"`

	// ResolvConf 系统解析配置文件路径
	ResolvConf string `json:"resolv_conf,omitempty"`

	// Timeout 单次查询超时
	Timeout Duration `json:"timeout"`

	// CacheSize 缓存条目上限
	CacheSize int `json:"cache_size"`

	// CacheTTL 缓存有效期，0 表示禁用缓存
	CacheTTL Duration `json:"cache_ttl"`
}

// WebSocketConfig WebSocket 传输配置
type WebSocketConfig struct {
	// ReadBufferSize 读缓冲区大小
	ReadBufferSize int `json:"read_buffer_size,omitempty"`

	// WriteBufferSize 写缓冲区大小
	WriteBufferSize int `json:"write_buffer_size,omitempty"`

	// HandshakeTimeout 握手超时
	HandshakeTimeout Duration `json:"handshake_timeout"`

	// EnableCompression 是否启用压缩
	EnableCompression bool `json:"enable_compression"`

	// InsecureSkipVerify 拨号 /wss 时跳过证书校验，仅用于测试环境
	InsecureSkipVerify bool `json:"insecure_skip_verify,omitempty"`
}

// DefaultTransportConfig 返回默认传输配置
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		// ==========================================================================
		//                              TCP 配置
		// ==========================================================================
		TCP: TCPConfig{
			KeepAlive:       true,                       // 启用 TCP KeepAlive：检测死连接
			KeepAlivePeriod: Duration(15 * time.Second), // KeepAlive 间隔：15 秒
			NoDelay:         true,                       // 禁用 Nagle 算法：减少延迟
		},

		// ==========================================================================
		//                              DNS 配置
		// ==========================================================================
		DNS: DNSConfig{
			ResolvConf: "/etc/resolv.conf",
			Timeout:    Duration(5 * time.Second), // 单次查询超时：5 秒
			CacheSize:  256,                       // 缓存 256 个域名
			CacheTTL:   Duration(time.Minute),     // 缓存 1 分钟
		},

		// ==========================================================================
		//                              WebSocket 配置
		// ==========================================================================
		WebSocket: WebSocketConfig{
			ReadBufferSize:    4096,                       // 读缓冲区：4 KB
			WriteBufferSize:   4096,                       // 写缓冲区：4 KB
			HandshakeTimeout:  Duration(10 * time.Second), // 握手超时：10 秒
			EnableCompression: false,                      // 禁用压缩：避免 CPU 开销
		},

		DialTimeout: Duration(10 * time.Second), // 拨号超时：10 秒
	}
}

// Validate 验证传输配置
func (c TransportConfig) Validate() error {
	if c.DialTimeout <= 0 {
		return errors.New("dial timeout must be positive")
	}

	if c.TCP.KeepAlive && c.TCP.KeepAlivePeriod <= 0 {
		return errors.New("TCP keep alive period must be positive when enabled")
	}

	if c.DNS.Timeout <= 0 {
		return errors.New("DNS timeout must be positive")
	}
	if c.DNS.CacheSize < 0 {
		return errors.New("DNS cache size must be non-negative")
	}
	if c.DNS.CacheTTL < 0 {
		return errors.New("DNS cache TTL must be non-negative")
	}

	if c.WebSocket.ReadBufferSize < 0 || c.WebSocket.WriteBufferSize < 0 {
		return errors.New("WebSocket buffer sizes must be non-negative")
	}
	if c.WebSocket.HandshakeTimeout <= 0 {
		return errors.New("WebSocket handshake timeout must be positive")
	}

	return nil
}
