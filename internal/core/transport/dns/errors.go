package dns

import "errors"

var (
	// ErrNoRecords 未找到 DNS 记录
	ErrNoRecords = errors.New("dns: no records found")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("dns: invalid config")

	// ErrQueryFailed 所有服务器查询失败
	ErrQueryFailed = errors.New("dns: query failed")
)
