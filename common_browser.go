//go:build js

package commontransport

import (
	"fmt"

	"github.com/dep2p/go-commontransport/config"
	"github.com/dep2p/go-commontransport/internal/core/transport/browser"
)

// InnerImplementation 受限宿主的内层：宿主提供的 WebSocket 传输
type InnerImplementation = browser.Transport

// New 使用宿主 WebSocket 能力创建组合传输
func New() CommonTransport {
	return wrap(browser.NewDefaultTransport())
}

// NewWithConfig 校验配置后创建组合传输
//
// 宿主自行管理连接参数，传输层配置在此变体中不生效。
func NewWithConfig(cfg *config.Config) (CommonTransport, error) {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return CommonTransport{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return New(), nil
}
