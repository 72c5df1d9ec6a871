package metrics

import "time"

// Reporter 提供记录和检索带宽指标的方法
type Reporter interface {
	// LogSent 记录某层发送的字节数
	LogSent(layer string, size int64)

	// LogRecv 记录某层接收的字节数
	LogRecv(layer string, size int64)

	// GetBandwidthTotals 获取总带宽统计
	GetBandwidthTotals() Stats

	// GetBandwidthForLayer 获取某层带宽统计
	GetBandwidthForLayer(layer string) Stats

	// GetBandwidthByLayer 获取所有层带宽统计
	GetBandwidthByLayer() map[string]Stats

	// Reset 重置所有统计
	Reset()

	// TrimIdle 清理空闲统计
	TrimIdle(since time.Time)
}

// 确保 BandwidthCounter 实现 Reporter 接口
var _ Reporter = (*BandwidthCounter)(nil)
