//go:build !js

package commontransport

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-commontransport/config"
	"github.com/dep2p/go-commontransport/internal/core/metrics"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
	"github.com/dep2p/go-commontransport/pkg/reactor"
)

func TestModule_ProvidesCommonTransport(t *testing.T) {
	var (
		ct        CommonTransport
		rt        *reactor.Reactor
		collector *metrics.Collector
	)

	app := fxtest.New(t,
		Module(config.NewConfig()),
		fx.Populate(&ct, &rt, &collector),
	)
	app.RequireStart()

	l, bound, err := ct.ListenOn(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
	require.NoError(t, err)
	assert.NotNil(t, bound)
	require.NoError(t, l.Close())

	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterCollector(reg, collector))

	app.RequireStop()
	assert.True(t, rt.Closed(), "停止时关闭 reactor")

	t.Log("✅ Module 提供 CommonTransport 和 reactor")
}

func TestModule_BandwidthDisabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Bandwidth.Enabled = false

	var ct CommonTransport
	app := fxtest.New(t,
		Module(cfg),
		fx.Populate(&ct),
	)
	app.RequireStart()
	app.RequireStop()

	// 未提供 Collector
	err := fx.New(fx.NopLogger, Module(cfg), fx.Invoke(func(*metrics.Collector) {})).Err()
	assert.Error(t, err)

	assert.NoError(t, RegisterCollector(prometheus.NewRegistry(), nil))

	t.Log("✅ 禁用带宽统计时不提供采集器")
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Transport.DialTimeout = 0

	app := NewApp(cfg, fx.Invoke(func(CommonTransport) {}))
	assert.Error(t, app.Err())

	t.Log("✅ 无效配置使应用构建失败")
}

func TestNewApp_InvalidBandwidthConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Bandwidth.Enabled = true
	cfg.Bandwidth.TrimInterval = 0

	app := NewApp(cfg, fx.Invoke(func(CommonTransport) {}))
	require.Error(t, app.Err())
	assert.ErrorIs(t, app.Err(), ErrInvalidConfig)

	t.Log("✅ 带宽配置无效时应用构建失败，清理任务不会启动")
}
