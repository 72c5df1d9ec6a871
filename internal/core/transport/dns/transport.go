package dns

import (
	"context"
	"fmt"

	"github.com/dep2p/go-commontransport/internal/core/transport/pending"
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	"github.com/dep2p/go-commontransport/pkg/lib/log"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

var logger = log.Logger("core/transport/dns")

// ============================================================================
//                              Transport 实现
// ============================================================================

// Transport DNS 解析传输层
type Transport struct {
	inner    interfaces.Transport
	resolver Resolver
	spawner  pending.Spawner
}

// 确保实现接口
var _ interfaces.Transport = Transport{}

// NewTransport 创建 DNS 解析传输层
func NewTransport(inner interfaces.Transport, resolver Resolver, spawner pending.Spawner) Transport {
	return Transport{
		inner:    inner,
		resolver: resolver,
		spawner:  spawner,
	}
}

// Inner 返回内层传输
func (t Transport) Inner() interfaces.Transport {
	return t.inner
}

// withInner 返回携带 inner 的副本
func (t Transport) withInner(inner interfaces.Transport) Transport {
	t.inner = inner
	return t
}

// rewrap 把内层的拒绝改写为本层的拒绝，其它错误原样返回
func (t Transport) rewrap(err error, addr ma.Multiaddr) error {
	refused, ok := interfaces.AsRefused(err)
	if !ok {
		return err
	}
	return interfaces.Refuse(t.withInner(refused.Transport), addr)
}

// ============================================================================
//                              Transport 接口实现
// ============================================================================

// ListenOn 转交内层
func (t Transport) ListenOn(addr ma.Multiaddr) (interfaces.Listener, ma.Multiaddr, error) {
	l, bound, err := t.inner.ListenOn(addr)
	if err != nil {
		return nil, nil, t.rewrap(err, addr)
	}
	return l, bound, nil
}

// Dial 解析地址中的 DNS 段后交给内层拨号
func (t Transport) Dial(addr ma.Multiaddr) (interfaces.PendingConn, error) {
	if !hasDNSComponent(addr) {
		pc, err := t.inner.Dial(addr)
		if err != nil {
			return nil, t.rewrap(err, addr)
		}
		return pc, nil
	}

	inner, resolver := t.inner, t.resolver
	return pending.Go(t.spawner, func(ctx context.Context) (interfaces.Conn, error) {
		resolved, err := resolveAddr(ctx, resolver, addr)
		if err != nil {
			logger.Debug("DNS 解析失败", "addr", addr.String(), "err", err)
			return nil, err
		}
		logger.Debug("DNS 解析完成", "addr", addr.String(), "resolved", resolved.String())

		pc, err := inner.Dial(resolved)
		if err != nil {
			if _, ok := interfaces.AsRefused(err); ok {
				return nil, fmt.Errorf("dns: resolved address %s: %w", resolved, interfaces.ErrUnsupportedAddress)
			}
			return nil, err
		}
		return pc.Wait(ctx)
	}), nil
}

// NatTraversal 转交内层
func (t Transport) NatTraversal(server, observed ma.Multiaddr) ma.Multiaddr {
	return t.inner.NatTraversal(server, observed)
}

// ============================================================================
//                              地址解析
// ============================================================================

func hasDNSComponent(addr ma.Multiaddr) bool {
	found := false
	ma.ForEach(addr, func(c ma.Component) bool {
		switch c.Code() {
		case ma.P_DNS, ma.P_DNS4, ma.P_DNS6:
			found = true
			return false
		}
		return true
	})
	return found
}

// resolveAddr 把每个 DNS 段替换为解析得到的 IP 段
func resolveAddr(ctx context.Context, resolver Resolver, addr ma.Multiaddr) (ma.Multiaddr, error) {
	comps := ma.Components(addr)
	out := make([]ma.Component, 0, len(comps))

	for _, c := range comps {
		var network string
		switch c.Code() {
		case ma.P_DNS4:
			network = "ip4"
		case ma.P_DNS6:
			network = "ip6"
		case ma.P_DNS:
			network = "ip"
		default:
			out = append(out, c)
			continue
		}

		ips, err := resolver.LookupIP(ctx, network, c.Value())
		if err != nil {
			return nil, fmt.Errorf("dns: resolve %s: %w", c.Value(), err)
		}
		if len(ips) == 0 {
			return nil, fmt.Errorf("dns: resolve %s: %w", c.Value(), ErrNoRecords)
		}

		ipc, err := ma.FromIP(ips[0])
		if err != nil {
			return nil, fmt.Errorf("dns: resolve %s: %w", c.Value(), err)
		}
		out = append(out, ipc)
	}

	return ma.Join(out...), nil
}
