package commontransport

import (
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// ============================================================================
//                              委托辅助
// ============================================================================

// delegateListen 在内层上监听
//
// 成功结果原样返回；内层拒绝时由 rewrap 把归还的内层包装为外层。
func delegateListen[T interfaces.Transport](inner T, addr ma.Multiaddr, rewrap func(T) interfaces.Transport) (interfaces.Listener, ma.Multiaddr, error) {
	l, bound, err := inner.ListenOn(addr)
	if err != nil {
		return nil, nil, translateRefusal(err, rewrap)
	}
	return l, bound, nil
}

// delegateDial 在内层上拨号
func delegateDial[T interfaces.Transport](inner T, addr ma.Multiaddr, rewrap func(T) interfaces.Transport) (interfaces.PendingConn, error) {
	pc, err := inner.Dial(addr)
	if err != nil {
		return nil, translateRefusal(err, rewrap)
	}
	return pc, nil
}

// translateRefusal 把内层的拒绝改写为外层的拒绝
//
// 只有归还的传输类型为 T 时才改写，地址保持不变；其他错误原样返回。
func translateRefusal[T interfaces.Transport](err error, rewrap func(T) interfaces.Transport) error {
	refused, ok := interfaces.AsRefused(err)
	if !ok {
		return err
	}
	back, ok := refused.Transport.(T)
	if !ok {
		return err
	}
	return interfaces.Refuse(rewrap(back), refused.Addr)
}
