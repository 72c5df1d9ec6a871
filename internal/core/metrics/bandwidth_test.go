package metrics

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-commontransport/tests/mocks"
)

// ============================================================================
// 基础功能测试
// ============================================================================

func TestBandwidthCounter_Totals(t *testing.T) {
	bwc := NewBandwidthCounter()

	bwc.LogSent("tcp", 1024)
	bwc.LogSent("ws", 2048)
	bwc.LogRecv("tcp", 512)

	// ws 的字节已经包含在 tcp 之内，不重复计入
	stats := bwc.GetBandwidthTotals()
	assert.Equal(t, int64(1024), stats.TotalOut)
	assert.Equal(t, int64(512), stats.TotalIn)
	assert.Equal(t, int64(2048), bwc.GetBandwidthForLayer("ws").TotalOut)

	t.Log("✅ 全局统计只累加线路层")
}

func TestBandwidthCounter_WithWireLayer(t *testing.T) {
	bwc := NewBandwidthCounter(WithWireLayer("ws"))

	bwc.LogSent("tcp", 1008)
	bwc.LogSent("ws", 1000)
	bwc.LogRecv("ws", 1000)

	stats := bwc.GetBandwidthTotals()
	assert.Equal(t, int64(1000), stats.TotalOut)
	assert.Equal(t, int64(1000), stats.TotalIn)

	t.Log("✅ 可以指定线路层")
}

func TestBandwidthCounter_ByLayer(t *testing.T) {
	bwc := NewBandwidthCounter()

	bwc.LogSent("tcp", 100)
	bwc.LogRecv("tcp", 200)
	bwc.LogSent("ws", 50)

	tcp := bwc.GetBandwidthForLayer("tcp")
	assert.Equal(t, int64(100), tcp.TotalOut)
	assert.Equal(t, int64(200), tcp.TotalIn)

	assert.Equal(t, Stats{}, bwc.GetBandwidthForLayer("unknown"))

	byLayer := bwc.GetBandwidthByLayer()
	require.Len(t, byLayer, 2)
	assert.Equal(t, int64(50), byLayer["ws"].TotalOut)

	t.Log("✅ 层级统计正确")
}

func TestBandwidthCounter_Rate(t *testing.T) {
	clk := clock.NewMock()
	bwc := NewBandwidthCounter(WithClock(clk))

	bwc.LogSent("tcp", 600)
	assert.InDelta(t, 10.0, bwc.GetBandwidthTotals().RateOut, 0.001)

	// 窗口滑过之后速率归零，累计值保留
	clk.Add(61 * time.Second)
	stats := bwc.GetBandwidthTotals()
	assert.Equal(t, 0.0, stats.RateOut)
	assert.Equal(t, int64(600), stats.TotalOut)

	t.Log("✅ 速率基于滑动窗口")
}

func TestBandwidthCounter_Reset(t *testing.T) {
	bwc := NewBandwidthCounter()
	bwc.LogSent("tcp", 100)
	bwc.LogRecv("ws", 100)

	bwc.Reset()

	assert.Equal(t, Stats{}, bwc.GetBandwidthTotals())
	assert.Empty(t, bwc.GetBandwidthByLayer())

	t.Log("✅ Reset 清空统计")
}

func TestBandwidthCounter_TrimIdle(t *testing.T) {
	clk := clock.NewMock()
	bwc := NewBandwidthCounter(WithClock(clk))

	bwc.LogSent("tcp", 100)
	clk.Add(2 * time.Minute)
	bwc.LogSent("ws", 100)

	bwc.TrimIdle(clk.Now().Add(-time.Minute))

	byLayer := bwc.GetBandwidthByLayer()
	assert.NotContains(t, byLayer, "tcp")
	assert.Contains(t, byLayer, "ws")

	t.Log("✅ TrimIdle 清理空闲层")
}

func TestBandwidthCounter_Concurrent(t *testing.T) {
	bwc := NewBandwidthCounter()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				bwc.LogSent("tcp", 1)
				bwc.LogRecv("tcp", 1)
				bwc.LogRecv("ws", 1)
			}
		}()
	}
	wg.Wait()

	stats := bwc.GetBandwidthTotals()
	assert.Equal(t, int64(8000), stats.TotalOut)
	assert.Equal(t, int64(8000), stats.TotalIn)

	t.Log("✅ 并发记录安全")
}

// ============================================================================
// CountingConn 测试
// ============================================================================

func TestCountingConn(t *testing.T) {
	bwc := NewBandwidthCounter()
	local, remote := mocks.NewMockConnPair(nil, nil)
	defer remote.Close()

	conn := NewCountingConn(local, bwc, "tcp")
	defer conn.Close()

	go func() {
		buf := make([]byte, 5)
		_, _ = io.ReadFull(remote, buf)
		_, _ = remote.Write([]byte("world!"))
	}()

	_, err := conn.Write([]byte("hello"))
	require.NoError(t, err)

	buf := make([]byte, 6)
	_, err = io.ReadFull(conn, buf)
	require.NoError(t, err)

	stats := bwc.GetBandwidthForLayer("tcp")
	assert.Equal(t, int64(5), stats.TotalOut)
	assert.Equal(t, int64(6), stats.TotalIn)

	t.Log("✅ CountingConn 统计读写字节")
}

func TestCountingConn_NilReporter(t *testing.T) {
	local, remote := mocks.NewMockConnPair(nil, nil)
	defer remote.Close()
	defer local.Close()

	assert.Same(t, local, NewCountingConn(local, nil, "tcp"))

	t.Log("✅ 无 Reporter 时不包装")
}
