//go:build !js

package commontransport

import (
	"fmt"

	"github.com/dep2p/go-commontransport/config"
	"github.com/dep2p/go-commontransport/internal/core/transport"
	"github.com/dep2p/go-commontransport/internal/core/transport/pending"
	"github.com/dep2p/go-commontransport/internal/core/transport/websocket"
	"github.com/dep2p/go-commontransport/pkg/reactor"
)

// InnerImplementation 原生构建的内层组合：WS<DNS<TCP>>
type InnerImplementation = websocket.Transport

// New 使用默认配置创建组合传输
//
// 所有连接和监听任务运行在 rt 上；rt 关闭后新的拨号返回错误。
func New(rt *reactor.Reactor) CommonTransport {
	return wrap(transport.NewStack(spawner(rt), transport.NewConfig(), nil))
}

// NewWithConfig 使用统一配置创建组合传输
//
// cfg 为 nil 时使用默认配置。
func NewWithConfig(rt *reactor.Reactor, cfg *config.Config) (CommonTransport, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return CommonTransport{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return wrap(transport.NewStack(spawner(rt), transport.ConfigFromUnified(cfg), nil)), nil
}

// spawner 避免把 nil *Reactor 装进非 nil 接口
func spawner(rt *reactor.Reactor) pending.Spawner {
	if rt == nil {
		return nil
	}
	return rt
}
