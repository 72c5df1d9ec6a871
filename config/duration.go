package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// errNegativeDuration 超时和间隔不允许为负
var errNegativeDuration = errors.New("duration must not be negative")

// Duration 配置文件中的时长
//
// 传输层的超时、保活周期、DNS 缓存 TTL 以及带宽清理间隔都使用此类型。
// JSON 中写作 "10s"、"5m" 这样的字符串，也接受纳秒整数。
type Duration time.Duration

// UnmarshalJSON 解析字符串或纳秒整数，拒绝负值
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v time.Duration

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		v = parsed
	} else {
		var n int64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("duration must be a string like \"10s\" or an integer of nanoseconds: %s", data)
		}
		v = time.Duration(n)
	}

	if v < 0 {
		return fmt.Errorf("%w: %s", errNegativeDuration, v)
	}
	*d = Duration(v)
	return nil
}

// MarshalJSON 写出字符串形式，Save 之后的文件可读
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Duration 返回 time.Duration，供各层配置使用
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
