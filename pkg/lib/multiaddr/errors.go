package multiaddr

import "errors"

// 通用错误
var (
	ErrInvalidMultiaddr = errors.New("invalid multiaddr")
	ErrInvalidProtocol  = errors.New("invalid protocol")
	ErrEmptyMultiaddr   = errors.New("empty multiaddr")
	ErrNoPeerID         = errors.New("no peer ID in multiaddr")
)
