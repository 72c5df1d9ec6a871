// Package metrics 提供传输层带宽统计
//
// 统计分两层：
//   - 全局统计（线路层的流量，默认 "tcp"，可用 WithWireLayer 修改）
//   - 按传输层统计（"tcp"、"ws" 等层名）
//
// # 快速开始
//
//	counter := metrics.NewBandwidthCounter()
//
//	// 包装连接，读写自动计入 "tcp" 层
//	conn = metrics.NewCountingConn(conn, counter, "tcp")
//
//	// 获取统计
//	stats := counter.GetBandwidthTotals()
//	fmt.Printf("In: %d, Out: %d\n", stats.TotalIn, stats.TotalOut)
//
// # 速率计算
//
// 速率基于 60 个 1 秒桶的滑动窗口，时钟可通过 WithClock 替换，便于测试。
//
// # Prometheus 导出
//
//	registry := prometheus.NewRegistry()
//	registry.MustRegister(metrics.NewCollector(counter))
package metrics
