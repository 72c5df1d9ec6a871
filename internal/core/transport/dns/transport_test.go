package dns

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
	"github.com/dep2p/go-commontransport/tests/mocks"
)

// fakeResolver 固定应答的解析器
type fakeResolver struct {
	mu    sync.Mutex
	calls []string
	fn    func(network, host string) ([]net.IP, error)
}

func (r *fakeResolver) LookupIP(_ context.Context, network, host string) ([]net.IP, error) {
	r.mu.Lock()
	r.calls = append(r.calls, network+"/"+host)
	r.mu.Unlock()
	return r.fn(network, host)
}

func staticResolver() *fakeResolver {
	return &fakeResolver{fn: func(network, host string) ([]net.IP, error) {
		switch network {
		case "ip4", "ip":
			return []net.IP{net.ParseIP("1.2.3.4")}, nil
		default:
			return []net.IP{net.ParseIP("2001:db8::1")}, nil
		}
	}}
}

func waitConn(t *testing.T, pc interfaces.PendingConn) (interfaces.Conn, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return pc.Wait(ctx)
}

// ============================================================================
//                              拨号
// ============================================================================

func TestTransport_Dial_PassThrough(t *testing.T) {
	inner := mocks.NewMockTransport()
	resolver := staticResolver()
	tr := NewTransport(inner, resolver, nil)

	addr := ma.StringCast("/ip4/127.0.0.1/tcp/4001")
	pc, err := tr.Dial(addr)
	require.NoError(t, err)

	conn, err := waitConn(t, pc)
	require.NoError(t, err)
	defer conn.Close()

	require.Len(t, inner.DialCalls, 1)
	assert.True(t, inner.DialCalls[0].Equal(addr))
	assert.Empty(t, resolver.calls, "没有 DNS 段时不解析")

	t.Log("✅ 无 DNS 段的地址直接交给内层")
}

func TestTransport_Dial_InnerRefusalRewrapped(t *testing.T) {
	inner := mocks.NewMockTransport()
	inner.DialFunc = func(addr ma.Multiaddr) (interfaces.PendingConn, error) {
		return nil, interfaces.Refuse(inner, addr)
	}
	tr := NewTransport(inner, staticResolver(), nil)

	addr := ma.StringCast("/ip4/127.0.0.1/udp/4001")
	_, err := tr.Dial(addr)

	refused, ok := interfaces.AsRefused(err)
	require.True(t, ok)
	assert.True(t, refused.Addr.Equal(addr))

	back, ok := refused.Transport.(Transport)
	require.True(t, ok, "归还的是 dns 层传输")
	assert.Same(t, inner, back.Inner())

	t.Log("✅ 内层拒绝被改写为本层拒绝")
}

func TestTransport_Dial_Resolves(t *testing.T) {
	tests := []struct {
		addr     string
		network  string
		resolved string
	}{
		{"/dns4/example.com/tcp/80", "ip4", "/ip4/1.2.3.4/tcp/80"},
		{"/dns6/example.com/tcp/80/ws", "ip6", "/ip6/2001:db8::1/tcp/80/ws"},
		{"/dns/example.com/tcp/443/wss", "ip", "/ip4/1.2.3.4/tcp/443/wss"},
	}

	for _, tt := range tests {
		inner := mocks.NewMockTransport()
		resolver := staticResolver()
		tr := NewTransport(inner, resolver, nil)

		pc, err := tr.Dial(ma.StringCast(tt.addr))
		require.NoError(t, err, tt.addr)

		conn, err := waitConn(t, pc)
		require.NoError(t, err, tt.addr)
		_ = conn.Close()

		require.Len(t, inner.DialCalls, 1)
		assert.Equal(t, tt.resolved, inner.DialCalls[0].String(), tt.addr)
		assert.Equal(t, []string{tt.network + "/example.com"}, resolver.calls, tt.addr)
	}

	t.Log("✅ DNS 段按类型解析后交给内层")
}

func TestTransport_Dial_ResolveFailure(t *testing.T) {
	inner := mocks.NewMockTransport()
	errBoom := errors.New("boom")
	resolver := &fakeResolver{fn: func(string, string) ([]net.IP, error) {
		return nil, errBoom
	}}
	tr := NewTransport(inner, resolver, nil)

	pc, err := tr.Dial(ma.StringCast("/dns4/example.com/tcp/80"))
	require.NoError(t, err)

	_, err = waitConn(t, pc)
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, inner.DialCount())

	t.Log("✅ 解析失败通过句柄返回")
}

func TestTransport_Dial_FirstRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().
		LookupIP(gomock.Any(), "ip4", "example.com").
		Return([]net.IP{net.ParseIP("5.6.7.8"), net.ParseIP("1.2.3.4")}, nil).
		Times(1)

	inner := mocks.NewMockTransport()
	tr := NewTransport(inner, resolver, nil)

	pc, err := tr.Dial(ma.StringCast("/dns4/example.com/tcp/80/ws"))
	require.NoError(t, err)
	conn, err := waitConn(t, pc)
	require.NoError(t, err)
	_ = conn.Close()

	require.Len(t, inner.DialCalls, 1)
	assert.Equal(t, "/ip4/5.6.7.8/tcp/80/ws", inner.DialCalls[0].String())

	t.Log("✅ 使用第一条解析记录")
}

func TestTransport_Dial_NoRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().
		LookupIP(gomock.Any(), "ip6", "example.com").
		Return(nil, nil)

	inner := mocks.NewMockTransport()
	tr := NewTransport(inner, resolver, nil)

	pc, err := tr.Dial(ma.StringCast("/dns6/example.com/tcp/80"))
	require.NoError(t, err)

	_, err = waitConn(t, pc)
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Zero(t, inner.DialCount())

	t.Log("✅ 无记录时返回 ErrNoRecords")
}

func TestTransport_Dial_RefusedAfterResolve(t *testing.T) {
	inner := mocks.NewMockTransport()
	inner.DialFunc = func(addr ma.Multiaddr) (interfaces.PendingConn, error) {
		return nil, interfaces.Refuse(inner, addr)
	}
	tr := NewTransport(inner, staticResolver(), nil)

	pc, err := tr.Dial(ma.StringCast("/dns4/example.com/udp/80"))
	require.NoError(t, err)

	_, err = waitConn(t, pc)
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedAddress)
	_, refused := interfaces.AsRefused(err)
	assert.False(t, refused, "解析之后无法归还传输")

	t.Log("✅ 解析后内层拒绝变为普通错误")
}

// ============================================================================
//                              监听与 NAT
// ============================================================================

func TestTransport_ListenOn(t *testing.T) {
	inner := mocks.NewMockTransport()
	tr := NewTransport(inner, staticResolver(), nil)

	addr := ma.StringCast("/ip4/127.0.0.1/tcp/0")
	l, bound, err := tr.ListenOn(addr)
	require.NoError(t, err)
	defer l.Close()
	assert.True(t, bound.Equal(addr))

	inner.ListenOnFunc = func(addr ma.Multiaddr) (interfaces.Listener, ma.Multiaddr, error) {
		return nil, nil, interfaces.Refuse(inner, addr)
	}
	_, _, err = tr.ListenOn(addr)
	refused, ok := interfaces.AsRefused(err)
	require.True(t, ok)
	assert.IsType(t, Transport{}, refused.Transport)

	errBind := errors.New("address in use")
	inner.ListenOnFunc = func(ma.Multiaddr) (interfaces.Listener, ma.Multiaddr, error) {
		return nil, nil, errBind
	}
	_, _, err = tr.ListenOn(addr)
	assert.Same(t, errBind, err, "资源错误原样返回")

	t.Log("✅ 监听转交内层")
}

func TestTransport_NatTraversal(t *testing.T) {
	inner := mocks.NewMockTransport()
	want := ma.StringCast("/ip4/1.2.3.4/tcp/4001")
	inner.NatTraversalFunc = func(server, observed ma.Multiaddr) ma.Multiaddr {
		return want
	}
	tr := NewTransport(inner, staticResolver(), nil)

	got := tr.NatTraversal(ma.StringCast("/ip4/10.0.0.1/tcp/4001"), ma.StringCast("/ip4/1.2.3.4/tcp/1"))
	assert.True(t, want.Equal(got))
	assert.Len(t, inner.NatCalls, 1)

	t.Log("✅ NAT 改写转交内层")
}
