package interfaces

import (
	"errors"
	"fmt"

	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

var (
	// ErrUnsupportedAddress 传输层不支持该地址
	ErrUnsupportedAddress = errors.New("unsupported address")

	// ErrListenerClosed 监听器已关闭
	ErrListenerClosed = errors.New("listener closed")
)

// RefusedError 表示某一层拒绝处理地址
//
// 这不是致命错误：Transport 是归还给调用方的可用传输值，Addr 是原样的地址。
type RefusedError struct {
	// Transport 归还的传输
	Transport Transport

	// Addr 被拒绝的地址
	Addr ma.Multiaddr
}

// Refuse 构造拒绝结果
func Refuse(t Transport, addr ma.Multiaddr) error {
	return &RefusedError{Transport: t, Addr: addr}
}

// Error 实现 error 接口
func (e *RefusedError) Error() string {
	if e.Addr == nil {
		return ErrUnsupportedAddress.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUnsupportedAddress, e.Addr)
}

// Unwrap 使 errors.Is(err, ErrUnsupportedAddress) 成立
func (e *RefusedError) Unwrap() error {
	return ErrUnsupportedAddress
}

// AsRefused 从错误链中取出拒绝结果
func AsRefused(err error) (*RefusedError, bool) {
	var refused *RefusedError
	if errors.As(err, &refused) {
		return refused, true
	}
	return nil, false
}
