// Package main 提供 commontransport 命令行入口
//
// 三种模式（互斥）：
//
//	-listen <addr>              在地址上运行回显服务
//	-dial <addr>                拨号并把 stdin/stdout 接到连接上
//	-nat <server>,<observed>    打印推算出的外部地址
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	commontransport "github.com/dep2p/go-commontransport"
	"github.com/dep2p/go-commontransport/config"
	"github.com/dep2p/go-commontransport/internal/core/metrics"
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	"github.com/dep2p/go-commontransport/pkg/lib/log"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

var logger = log.Logger("commontransport/cmd")

// ============================================================================
//                              命令行参数
// ============================================================================
var (
	configFile  = flag.String("config", "", "配置文件路径（JSON）")
	listenAddr  = flag.String("listen", "", "监听地址，运行回显服务，如 /ip4/0.0.0.0/tcp/4001/ws")
	dialAddr    = flag.String("dial", "", "拨号地址，stdin/stdout 接到连接上")
	natAddrs    = flag.String("nat", "", "服务端地址与观察到的地址，逗号分隔")
	logLevel    = flag.String("log-level", "", "日志级别，覆盖配置文件 (debug/info/warn/error)")
	metricsAddr = flag.String("metrics", "", "Prometheus 指标监听地址，如 127.0.0.1:9100")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	var (
		ct        commontransport.CommonTransport
		counter   *metrics.BandwidthCounter
		collector *metrics.Collector
	)
	populate := []any{&ct}
	if cfg.Bandwidth.Enabled {
		populate = append(populate, &counter, &collector)
	}

	app := commontransport.NewApp(cfg, fx.Populate(populate...))
	if err := app.Err(); err != nil {
		return fmt.Errorf("构建失败: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			logger.Warn("停止时出错", "err", err)
		}
		printBandwidth(counter)
	}()

	if *metricsAddr != "" {
		if err := serveMetrics(*metricsAddr, collector); err != nil {
			return err
		}
	}

	switch {
	case *natAddrs != "":
		return runNat(ct, *natAddrs)
	case *listenAddr != "":
		return runListen(ctx, ct, *listenAddr)
	case *dialAddr != "":
		return runDial(ctx, ct, *dialAddr)
	default:
		flag.Usage()
		return errors.New("需要 -listen、-dial 或 -nat 之一")
	}
}

// loadConfig 加载配置文件并应用命令行覆盖
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging 按配置设置日志输出
//
// 配置了文件时返回打开的文件，由调用方关闭。
func setupLogging(cfg config.LogConfig) (*os.File, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	if cfg.File == "" {
		log.Configure(os.Stderr, level, strings.ToLower(cfg.Format))
		return nil, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	log.Configure(file, level, strings.ToLower(cfg.Format))
	return file, nil
}

// serveMetrics 在后台提供 /metrics
func serveMetrics(addr string, collector *metrics.Collector) error {
	reg := prometheus.NewRegistry()
	if err := commontransport.RegisterCollector(reg, collector); err != nil {
		return fmt.Errorf("注册指标失败: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) { //nolint:gosec // 仅用于本地调试
			logger.Warn("指标服务退出", "err", err)
		}
	}()
	fmt.Printf("指标: http://%s/metrics\n", addr)
	return nil
}

// ============================================================================
//                              运行模式
// ============================================================================

func runNat(ct commontransport.CommonTransport, arg string) error {
	server, observed, ok := strings.Cut(arg, ",")
	if !ok {
		return errors.New("-nat 需要 <server>,<observed>")
	}
	serverAddr, err := ma.NewMultiaddr(strings.TrimSpace(server))
	if err != nil {
		return fmt.Errorf("服务端地址: %w", err)
	}
	observedAddr, err := ma.NewMultiaddr(strings.TrimSpace(observed))
	if err != nil {
		return fmt.Errorf("观察地址: %w", err)
	}

	external := ct.NatTraversal(serverAddr, observedAddr)
	if external == nil {
		return errors.New("无法推算外部地址")
	}
	fmt.Println(external)
	return nil
}

func runListen(ctx context.Context, ct commontransport.CommonTransport, arg string) error {
	addr, err := ma.NewMultiaddr(arg)
	if err != nil {
		return err
	}

	l, bound, err := ct.ListenOn(addr)
	if err != nil {
		return describe(err)
	}
	defer func() { _ = l.Close() }()

	fmt.Printf("监听: %s\n", bound)
	fmt.Println("回显服务已启动，按 Ctrl+C 退出")

	for {
		in, err := l.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, interfaces.ErrListenerClosed) {
				return nil
			}
			return err
		}
		go serveEcho(ctx, in)
	}
}

// serveEcho 完成升级后把收到的数据原样写回
func serveEcho(ctx context.Context, in interfaces.Incoming) {
	conn, err := in.Upgrade.Wait(ctx)
	if err != nil {
		logger.Debug("入站升级失败", "remote", in.RemoteAddr, "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	logger.Info("入站连接", "remote", conn.RemoteMultiaddr())
	n, err := io.Copy(conn, conn)
	logger.Info("入站连接关闭", "remote", conn.RemoteMultiaddr(), "bytes", n, "err", err)
}

func runDial(ctx context.Context, ct commontransport.CommonTransport, arg string) error {
	addr, err := ma.NewMultiaddr(arg)
	if err != nil {
		return err
	}

	pc, err := ct.Dial(addr)
	if err != nil {
		return describe(err)
	}
	conn, err := pc.Wait(ctx)
	if err != nil {
		return fmt.Errorf("拨号 %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	logger.Info("已连接", "remote", conn.RemoteMultiaddr())

	done := make(chan error, 1)
	go func() {
		_, err := io.Copy(os.Stdout, conn)
		done <- err
	}()
	go func() {
		_, _ = io.Copy(conn, os.Stdin)
		_ = conn.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return nil
	}
}

// describe 区分地址被拒绝和其他错误
func describe(err error) error {
	if refused, ok := interfaces.AsRefused(err); ok {
		return fmt.Errorf("不支持的地址 %s", refused.Addr)
	}
	return err
}

func printBandwidth(counter *metrics.BandwidthCounter) {
	if counter == nil {
		return
	}
	totals := counter.GetBandwidthTotals()
	fmt.Fprintf(os.Stderr, "流量: 发送 %d 字节, 接收 %d 字节\n", totals.TotalOut, totals.TotalIn)
	for layer, stats := range counter.GetBandwidthByLayer() {
		fmt.Fprintf(os.Stderr, "  %-4s 发送 %d, 接收 %d\n", layer, stats.TotalOut, stats.TotalIn)
	}
}
