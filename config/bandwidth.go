package config

import (
	"errors"
	"time"
)

// BandwidthConfig 带宽统计配置
//
// 按传输层（tcp/ws）统计流量。
type BandwidthConfig struct {
	// Enabled 是否启用带宽统计
	// 默认值: true
	Enabled bool `json:"enabled"`

	// TrimInterval 清理空闲条目的间隔
	// 默认值: 5m
	TrimInterval Duration `json:"trim_interval"`

	// IdleTimeout 空闲超时，超过此时间的条目会被清理
	// 默认值: 30m
	IdleTimeout Duration `json:"idle_timeout"`
}

// DefaultBandwidthConfig 返回默认的带宽统计配置
func DefaultBandwidthConfig() BandwidthConfig {
	return BandwidthConfig{
		Enabled:      true,
		TrimInterval: Duration(5 * time.Minute),
		IdleTimeout:  Duration(30 * time.Minute),
	}
}

// Validate 验证带宽统计配置的有效性
func (c BandwidthConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.TrimInterval <= 0 {
		return errors.New("trim interval must be positive")
	}
	if c.IdleTimeout <= 0 {
		return errors.New("idle timeout must be positive")
	}
	return nil
}
