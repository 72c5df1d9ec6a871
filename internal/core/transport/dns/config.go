package dns

import (
	"fmt"
	"time"
)

// DefaultResolvConf 系统解析配置文件
const DefaultResolvConf = "/etc/resolv.conf"

// Config DNS 解析配置
type Config struct {
	// Servers 自定义 DNS 服务器（格式: "ip:port"），为空时读取 ResolvConf
	Servers []string

	// ResolvConf 系统解析配置文件路径
	ResolvConf string

	// Timeout 单次查询超时
	Timeout time.Duration

	// CacheSize 缓存条目上限
	CacheSize int

	// CacheTTL 缓存有效期，0 表示禁用缓存
	CacheTTL time.Duration
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		ResolvConf: DefaultResolvConf,
		Timeout:    5 * time.Second,
		CacheSize:  256,
		CacheTTL:   time.Minute,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache size must be non-negative", ErrInvalidConfig)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache TTL must be non-negative", ErrInvalidConfig)
	}
	return nil
}
