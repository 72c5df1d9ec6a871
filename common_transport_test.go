//go:build !js

package commontransport

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-commontransport/config"
	"github.com/dep2p/go-commontransport/internal/core/transport/pending"
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
	"github.com/dep2p/go-commontransport/pkg/reactor"
)

func newTestReactor(t *testing.T) *reactor.Reactor {
	t.Helper()
	rt := reactor.New(context.Background())
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// ============================================================================
//                              具体场景
// ============================================================================

func TestCommonTransport_DialUnsupportedSegment(t *testing.T) {
	ct := New(newTestReactor(t))
	addr := ma.StringCast("/ip4/127.0.0.1/tcp/4001/http")

	pc, err := ct.Dial(addr)
	assert.Nil(t, pc)

	refused, ok := interfaces.AsRefused(err)
	require.True(t, ok)
	assert.Equal(t, "/ip4/127.0.0.1/tcp/4001/http", refused.Addr.String(), "地址未被部分消费")

	back, ok := refused.Transport.(CommonTransport)
	require.True(t, ok, "归还的是 CommonTransport")

	// 归还的传输仍然可用
	l, _, err := back.ListenOn(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
	require.NoError(t, err)
	assert.NoError(t, l.Close())

	t.Log("✅ 不支持的应用层段被拒绝，传输与地址原样归还")
}

func TestCommonTransport_ListenWildcardPort(t *testing.T) {
	ct := New(newTestReactor(t))

	l, bound, err := ct.ListenOn(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
	require.NoError(t, err)
	defer l.Close()

	port, err := bound.ValueForProtocol(ma.P_TCP)
	require.NoError(t, err)
	assert.NotEqual(t, "0", port)
	assert.NotEmpty(t, port)

	_, last := ma.SplitLast(bound)
	assert.Equal(t, ma.P_WS, last.Code())

	t.Log("✅ 通配端口解析为具体端口:", bound)
}

func TestCommonTransport_NatTraversalDeterministic(t *testing.T) {
	ct := New(newTestReactor(t))

	server := ma.StringCast("/ip4/10.0.0.1/tcp/4001/ws")
	observed := ma.StringCast("/ip4/1.2.3.4/tcp/50000/ws")

	first := ct.NatTraversal(server, observed)
	second := ct.NatTraversal(server, observed)

	require.NotNil(t, first)
	assert.True(t, first.Equal(second))
	assert.Equal(t, "/ip4/1.2.3.4/tcp/4001/ws", first.String())

	// 无法推算时返回 nil
	assert.Nil(t, ct.NatTraversal(server, ma.StringCast("/ip4/1.2.3.4/udp/50000")))

	t.Log("✅ NatTraversal 对相同输入返回相同结果")
}

// ============================================================================
//                              原生栈行为
// ============================================================================

func TestCommonTransport_ListenWSSRefused(t *testing.T) {
	ct := New(newTestReactor(t))
	addr := ma.StringCast("/ip4/127.0.0.1/tcp/0/wss")

	_, _, err := ct.ListenOn(addr)

	refused, ok := interfaces.AsRefused(err)
	require.True(t, ok)
	assert.True(t, refused.Addr.Equal(addr))
	assert.IsType(t, CommonTransport{}, refused.Transport)

	t.Log("✅ 不支持监听 /wss")
}

func TestCommonTransport_RoundTrip(t *testing.T) {
	ct := New(newTestReactor(t))
	ctx := testContext(t)

	l, bound, err := ct.ListenOn(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
	require.NoError(t, err)
	defer l.Close()

	pc, err := ct.Dial(bound)
	require.NoError(t, err)

	in, err := l.Accept(ctx)
	require.NoError(t, err)
	server, err := in.Upgrade.Wait(ctx)
	require.NoError(t, err)
	defer server.Close()

	client, err := pc.Wait(ctx)
	require.NoError(t, err)
	defer client.Close()

	_, err = server.Write([]byte("hello"))
	require.NoError(t, err)
	buf := make([]byte, 5)
	_, err = io.ReadFull(client, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))

	assert.True(t, client.RemoteMultiaddr().Equal(bound))

	t.Log("✅ 组合传输监听与拨号互通")
}

func TestCommonTransport_ReactorClosed(t *testing.T) {
	rt := reactor.New(context.Background())
	ct := New(rt)

	l, bound, err := ct.ListenOn(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, rt.Close())

	// reactor 关闭是资源错误，不是拒绝
	pc, err := ct.Dial(bound)
	require.NoError(t, err)

	_, err = pc.Wait(testContext(t))
	assert.ErrorIs(t, err, pending.ErrSpawnerClosed)
	_, refused := interfaces.AsRefused(err)
	assert.False(t, refused)

	t.Log("✅ reactor 关闭后拨号返回资源错误")
}

func TestCommonTransport_BindFailure(t *testing.T) {
	ct := New(newTestReactor(t))

	l, bound, err := ct.ListenOn(ma.StringCast("/ip4/127.0.0.1/tcp/0/ws"))
	require.NoError(t, err)
	defer l.Close()

	_, _, err = ct.ListenOn(bound)
	require.Error(t, err)
	_, refused := interfaces.AsRefused(err)
	assert.False(t, refused, "端口占用不是拒绝")

	t.Log("✅ 绑定失败原样返回")
}

func TestNewWithConfig(t *testing.T) {
	rt := newTestReactor(t)

	_, err := NewWithConfig(rt, nil)
	assert.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Transport.WebSocket.HandshakeTimeout = 0
	_, err = NewWithConfig(rt, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Log("✅ NewWithConfig 校验配置")
}
