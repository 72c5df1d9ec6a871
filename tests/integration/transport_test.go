//go:build integration

package integration_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	commontransport "github.com/dep2p/go-commontransport"
	"github.com/dep2p/go-commontransport/internal/core/transport/dns"
	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
	"github.com/dep2p/go-commontransport/tests/testutil"
)

// dnsAddr 把绑定地址改写为以测试域名开头的地址
func dnsAddr(t *testing.T, bound ma.Multiaddr, host string) ma.Multiaddr {
	t.Helper()
	port, err := bound.ValueForProtocol(ma.P_TCP)
	require.NoError(t, err)
	return ma.StringCast(fmt.Sprintf("/dns4/%s/tcp/%s/ws", host, port))
}

// TestTransport_DialByName 测试按域名拨号
//
// 验证:
//   - DNS 层通过配置的服务器解析 /dns4 段
//   - 解析后的地址经 TCP 与 WebSocket 升级完成回显
//   - 两层都记录了流量
func TestTransport_DialByName(t *testing.T) {
	ctx := testutil.Context(t, 10*time.Second)
	dnsServer := testutil.StartDNSServer(t, map[string]string{
		testutil.DefaultTestHost: "127.0.0.1",
	})

	server := testutil.NewTestTransport(t).Start()
	client := testutil.NewTestTransport(t).WithDNSServer(dnsServer).Start()

	bound := server.ServeEcho(t)
	target := dnsAddr(t, bound, testutil.DefaultTestHost)
	t.Logf("服务端: %s, 拨号: %s", bound, target)

	got, err := client.Echo(ctx, target, testutil.DefaultTestPayload)
	require.NoError(t, err)
	assert.Equal(t, testutil.DefaultTestPayload, got)

	require.NotNil(t, client.Counter)
	testutil.Eventually(t, 5*time.Second, func() bool {
		ws := client.Counter.GetBandwidthForLayer("ws")
		tcp := client.Counter.GetBandwidthForLayer("tcp")
		return ws.TotalOut == int64(len(testutil.DefaultTestPayload)) && tcp.TotalOut > ws.TotalOut
	}, "客户端应该按层记录流量")

	t.Log("✅ 按域名拨号并完成回显")
}

// TestTransport_UnknownName 测试无法解析的域名
func TestTransport_UnknownName(t *testing.T) {
	ctx := testutil.Context(t, 10*time.Second)
	dnsServer := testutil.StartDNSServer(t, map[string]string{})

	client := testutil.NewTestTransport(t).WithDNSServer(dnsServer).Start()

	pc, err := client.Dial(ma.StringCast("/dns4/missing.commontransport.test/tcp/4001/ws"))
	require.NoError(t, err, "带 DNS 段的地址被接受，解析在句柄中进行")

	_, err = pc.Wait(ctx)
	assert.ErrorIs(t, err, dns.ErrNoRecords)

	t.Log("✅ NXDOMAIN 通过句柄返回")
}

// TestTransport_RetryWithReturnedTransport 测试用归还的传输重试
//
// 验证:
//   - 不支持的地址被拒绝，归还的 CommonTransport 与地址原样
//   - 归还的传输可直接用于下一次拨号
func TestTransport_RetryWithReturnedTransport(t *testing.T) {
	ctx := testutil.Context(t, 10*time.Second)

	server := testutil.NewTestTransport(t).Start()
	client := testutil.NewTestTransport(t).Start()
	bound := server.ServeEcho(t)

	port, err := bound.ValueForProtocol(ma.P_TCP)
	require.NoError(t, err)
	bad := ma.StringCast("/ip4/127.0.0.1/tcp/" + port + "/http")

	_, err = client.Dial(bad)
	refused, ok := interfaces.AsRefused(err)
	require.True(t, ok)
	assert.True(t, refused.Addr.Equal(bad))

	retry, ok := refused.Transport.(commontransport.CommonTransport)
	require.True(t, ok)

	pc, err := retry.Dial(bound)
	require.NoError(t, err)
	conn, err := pc.Wait(ctx)
	require.NoError(t, err)
	defer conn.Close()

	t.Log("✅ 归还的传输可继续拨号")
}

// TestTransport_ConcurrentDials 测试并发拨号
func TestTransport_ConcurrentDials(t *testing.T) {
	ctx := testutil.Context(t, 15*time.Second)

	server := testutil.NewTestTransport(t).Start()
	client := testutil.NewTestTransport(t).Start()
	bound := server.ServeEcho(t)

	const dials = 16
	var g errgroup.Group
	for i := 0; i < dials; i++ {
		payload := fmt.Sprintf("%s #%d", testutil.DefaultTestPayload, i)
		g.Go(func() error {
			got, err := client.Echo(ctx, bound, payload)
			if err != nil {
				return err
			}
			if got != payload {
				return fmt.Errorf("回显不一致: %q != %q", got, payload)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	t.Log("✅ 并发拨号互不干扰")
}
