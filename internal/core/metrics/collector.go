package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "commontransport"

var (
	bytesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "bytes_total"),
		"传输层累计字节数",
		[]string{"layer", "direction"}, nil,
	)
	rateDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "bytes_per_second"),
		"传输层最近 60 秒平均速率",
		[]string{"layer", "direction"}, nil,
	)
)

// Collector 将 BandwidthCounter 导出为 Prometheus 指标
//
// 层名 "all" 表示全局统计，即线路层的流量。
type Collector struct {
	reporter Reporter
}

// 确保实现接口
var _ prometheus.Collector = (*Collector)(nil)

// NewCollector 创建导出器
func NewCollector(reporter Reporter) *Collector {
	return &Collector{reporter: reporter}
}

// Describe 实现 prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- bytesDesc
	ch <- rateDesc
}

// Collect 实现 prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.emit(ch, "all", c.reporter.GetBandwidthTotals())
	for layer, stats := range c.reporter.GetBandwidthByLayer() {
		c.emit(ch, layer, stats)
	}
}

func (c *Collector) emit(ch chan<- prometheus.Metric, layer string, stats Stats) {
	ch <- prometheus.MustNewConstMetric(bytesDesc, prometheus.CounterValue, float64(stats.TotalIn), layer, "in")
	ch <- prometheus.MustNewConstMetric(bytesDesc, prometheus.CounterValue, float64(stats.TotalOut), layer, "out")
	ch <- prometheus.MustNewConstMetric(rateDesc, prometheus.GaugeValue, stats.RateIn, layer, "in")
	ch <- prometheus.MustNewConstMetric(rateDesc, prometheus.GaugeValue, stats.RateOut, layer, "out")
}
