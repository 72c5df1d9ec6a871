package tcp

import (
	"fmt"
	"time"
)

// Config TCP 传输配置
type Config struct {
	// DialTimeout 拨号超时
	DialTimeout time.Duration

	// KeepAlive 是否启用 TCP KeepAlive
	KeepAlive bool

	// KeepAlivePeriod KeepAlive 周期
	KeepAlivePeriod time.Duration

	// NoDelay 是否禁用 Nagle 算法
	NoDelay bool
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		DialTimeout:     10 * time.Second,
		KeepAlive:       true,
		KeepAlivePeriod: 15 * time.Second,
		NoDelay:         true,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.DialTimeout <= 0 {
		return fmt.Errorf("%w: dial timeout must be positive", ErrInvalidConfig)
	}
	if c.KeepAlive && c.KeepAlivePeriod <= 0 {
		return fmt.Errorf("%w: keep alive period must be positive when enabled", ErrInvalidConfig)
	}
	return nil
}

// keepAlive 返回 net.Dialer / net.ListenConfig 使用的 KeepAlive 值
//
// 负值表示禁用。
func (c Config) keepAlive() time.Duration {
	if !c.KeepAlive {
		return -1
	}
	return c.KeepAlivePeriod
}
