package websocket

import (
	"crypto/tls"
	"fmt"
	"time"
)

// Config WebSocket 传输配置
type Config struct {
	// HandshakeTimeout 握手超时
	HandshakeTimeout time.Duration

	// ReadBufferSize 读缓冲区大小，0 表示使用默认值
	ReadBufferSize int

	// WriteBufferSize 写缓冲区大小，0 表示使用默认值
	WriteBufferSize int

	// EnableCompression 是否协商 permessage-deflate
	EnableCompression bool

	// TLSClientConfig 拨号 /wss 时使用的 TLS 配置，为 nil 时使用默认配置
	TLSClientConfig *tls.Config
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.HandshakeTimeout <= 0 {
		return fmt.Errorf("%w: handshake timeout must be positive", ErrInvalidConfig)
	}
	if c.ReadBufferSize < 0 || c.WriteBufferSize < 0 {
		return fmt.Errorf("%w: buffer sizes must be non-negative", ErrInvalidConfig)
	}
	return nil
}
