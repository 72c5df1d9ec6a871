package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultWireLayer 默认的线路层
//
// 上层的字节已经包含在线路层之内，全局统计只累加线路层。
const DefaultWireLayer = "tcp"

// BandwidthCounter 带宽计数器
//
// 跟踪经过计数连接收发的数据，使用原子操作实现并发安全的计数器。
type BandwidthCounter struct {
	clock     clock.Clock
	wireLayer string

	// 全局计数器
	totalIn  atomic.Int64
	totalOut atomic.Int64

	totalInRate  *RateMeter
	totalOutRate *RateMeter

	// 层级计数器
	layerMu sync.RWMutex
	layers  map[string]*layerCounter
}

// layerCounter 单层计数
type layerCounter struct {
	in      atomic.Int64
	out     atomic.Int64
	inRate  *RateMeter
	outRate *RateMeter
}

// Option BandwidthCounter 选项
type Option func(*BandwidthCounter)

// WithClock 设置时钟
func WithClock(clk clock.Clock) Option {
	return func(bwc *BandwidthCounter) {
		bwc.clock = clk
	}
}

// WithWireLayer 设置计入全局统计的层
func WithWireLayer(layer string) Option {
	return func(bwc *BandwidthCounter) {
		bwc.wireLayer = layer
	}
}

// NewBandwidthCounter 创建新的 BandwidthCounter
func NewBandwidthCounter(opts ...Option) *BandwidthCounter {
	bwc := &BandwidthCounter{
		clock:     clock.New(),
		wireLayer: DefaultWireLayer,
		layers:    make(map[string]*layerCounter),
	}
	for _, opt := range opts {
		opt(bwc)
	}
	bwc.totalInRate = NewRateMeter(bwc.clock)
	bwc.totalOutRate = NewRateMeter(bwc.clock)
	return bwc
}

// LogSent 记录某层发送的字节数
//
// 只有线路层的字节计入全局统计。
func (bwc *BandwidthCounter) LogSent(layer string, size int64) {
	if layer == bwc.wireLayer {
		bwc.totalOut.Add(size)
		bwc.totalOutRate.Add(size)
	}

	lc := bwc.layer(layer)
	lc.out.Add(size)
	lc.outRate.Add(size)
}

// LogRecv 记录某层接收的字节数
func (bwc *BandwidthCounter) LogRecv(layer string, size int64) {
	if layer == bwc.wireLayer {
		bwc.totalIn.Add(size)
		bwc.totalInRate.Add(size)
	}

	lc := bwc.layer(layer)
	lc.in.Add(size)
	lc.inRate.Add(size)
}

func (bwc *BandwidthCounter) layer(name string) *layerCounter {
	bwc.layerMu.RLock()
	lc := bwc.layers[name]
	bwc.layerMu.RUnlock()
	if lc != nil {
		return lc
	}

	bwc.layerMu.Lock()
	defer bwc.layerMu.Unlock()

	if lc = bwc.layers[name]; lc == nil {
		lc = &layerCounter{
			inRate:  NewRateMeter(bwc.clock),
			outRate: NewRateMeter(bwc.clock),
		}
		bwc.layers[name] = lc
	}
	return lc
}

// GetBandwidthTotals 返回总带宽统计
func (bwc *BandwidthCounter) GetBandwidthTotals() Stats {
	return Stats{
		TotalIn:  bwc.totalIn.Load(),
		TotalOut: bwc.totalOut.Load(),
		RateIn:   bwc.totalInRate.Rate(),
		RateOut:  bwc.totalOutRate.Rate(),
	}
}

// GetBandwidthForLayer 返回某层带宽统计
func (bwc *BandwidthCounter) GetBandwidthForLayer(layer string) Stats {
	bwc.layerMu.RLock()
	lc := bwc.layers[layer]
	bwc.layerMu.RUnlock()

	if lc == nil {
		return Stats{}
	}
	return lc.stats()
}

// GetBandwidthByLayer 返回所有层带宽统计
func (bwc *BandwidthCounter) GetBandwidthByLayer() map[string]Stats {
	bwc.layerMu.RLock()
	defer bwc.layerMu.RUnlock()

	result := make(map[string]Stats, len(bwc.layers))
	for name, lc := range bwc.layers {
		result[name] = lc.stats()
	}
	return result
}

func (lc *layerCounter) stats() Stats {
	return Stats{
		TotalIn:  lc.in.Load(),
		TotalOut: lc.out.Load(),
		RateIn:   lc.inRate.Rate(),
		RateOut:  lc.outRate.Rate(),
	}
}

// Reset 清除所有统计
func (bwc *BandwidthCounter) Reset() {
	bwc.totalIn.Store(0)
	bwc.totalOut.Store(0)
	bwc.totalInRate.Reset()
	bwc.totalOutRate.Reset()

	bwc.layerMu.Lock()
	bwc.layers = make(map[string]*layerCounter)
	bwc.layerMu.Unlock()
}

// TrimIdle 清理 since 之后没有流量的层
func (bwc *BandwidthCounter) TrimIdle(since time.Time) {
	bwc.layerMu.Lock()
	defer bwc.layerMu.Unlock()

	for name, lc := range bwc.layers {
		if lc.inRate.LastUpdate().Before(since) && lc.outRate.LastUpdate().Before(since) {
			delete(bwc.layers, name)
		}
	}
}
