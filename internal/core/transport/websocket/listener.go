package websocket

import (
	"context"

	"github.com/dep2p/go-commontransport/internal/core/transport/pending"
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// listener WebSocket 监听器
//
// 每个入站事件的升级在内层升级完成后继续执行服务端握手。
type listener struct {
	inner     interfaces.Listener
	addr      ma.Multiaddr
	transport Transport
}

// 确保实现接口
var _ interfaces.Listener = (*listener)(nil)

func (l *listener) Accept(ctx context.Context) (interfaces.Incoming, error) {
	in, err := l.inner.Accept(ctx)
	if err != nil {
		return interfaces.Incoming{}, err
	}

	t := l.transport
	return interfaces.Incoming{
		Upgrade:    pending.Then(in.Upgrade, t.spawner, t.serverHandshake),
		RemoteAddr: in.RemoteAddr.Encapsulate(wsComponent.Multiaddr()),
	}, nil
}

func (l *listener) Multiaddr() ma.Multiaddr {
	return l.addr
}

func (l *listener) Close() error {
	return l.inner.Close()
}
