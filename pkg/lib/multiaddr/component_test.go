package multiaddr

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFirstAndLast(t *testing.T) {
	ma := StringCast("/ip4/127.0.0.1/tcp/4001/ws")

	first, rest := SplitFirst(ma)
	assert.Equal(t, P_IP4, first.Code())
	assert.Equal(t, "127.0.0.1", first.Value())
	assert.Equal(t, "/tcp/4001/ws", rest.String())

	head, last := SplitLast(ma)
	assert.Equal(t, P_WS, last.Code())
	assert.Equal(t, "/ip4/127.0.0.1/tcp/4001", head.String())

	// 单组件地址
	head, last = SplitLast(StringCast("/ws"))
	assert.Nil(t, head)
	assert.Equal(t, "/ws", last.String())

	// nil 地址
	c, r := SplitFirst(nil)
	assert.Equal(t, 0, c.Code())
	assert.Nil(t, r)
}

func TestNewComponent(t *testing.T) {
	c, err := NewComponent("tcp", "8080")
	require.NoError(t, err)
	assert.Equal(t, "/tcp/8080", c.String())

	c, err = NewComponent("ip6", "0:0:0:0:0:0:0:1")
	require.NoError(t, err)
	assert.Equal(t, "::1", c.Value(), "值应规范化")

	_, err = NewComponent("ws", "x")
	assert.ErrorIs(t, err, ErrInvalidProtocol)

	_, err = NewComponent("bogus", "")
	assert.ErrorIs(t, err, ErrInvalidProtocol)

	_, err = NewComponent("ip4", "not-an-ip")
	assert.Error(t, err)
}

func TestJoinComponents(t *testing.T) {
	ip, _ := NewComponent("ip4", "1.2.3.4")
	port, _ := NewComponent("tcp", "80")
	ws, _ := NewComponent("ws", "")

	ma := Join(ip, port, ws)
	assert.Equal(t, "/ip4/1.2.3.4/tcp/80/ws", ma.String())
	assert.Nil(t, Join())

	comps := Components(ma)
	require.Len(t, comps, 3)
	assert.True(t, comps[1].Equal(port))
}

func TestForEach(t *testing.T) {
	ma := StringCast("/dns4/example.com/tcp/80/ws")

	var names []string
	ForEach(ma, func(c Component) bool {
		names = append(names, c.Protocol().Name)
		return c.Code() != P_TCP
	})
	assert.Equal(t, []string{"dns4", "tcp"}, names)
}

func TestSplitPeer(t *testing.T) {
	ma := StringCast("/ip4/127.0.0.1/tcp/4001/p2p/" + testPeerID)

	transport, peerID := Split(ma)
	assert.Equal(t, "/ip4/127.0.0.1/tcp/4001", transport.String())
	assert.Equal(t, testPeerID, peerID)

	assert.True(t, JoinPeer(transport, peerID).Equal(ma))
	assert.True(t, WithoutPeerID(ma).Equal(transport))

	id, err := GetPeerID(ma)
	require.NoError(t, err)
	assert.Equal(t, testPeerID, id)

	_, err = GetPeerID(transport)
	assert.ErrorIs(t, err, ErrNoPeerID)
}

func TestFilterAndUnique(t *testing.T) {
	addrs := []Multiaddr{
		StringCast("/ip4/1.1.1.1/tcp/1"),
		StringCast("/dns4/a.example/tcp/2"),
		StringCast("/ip4/1.1.1.1/tcp/1"),
	}

	assert.Len(t, UniqueAddrs(addrs), 2)
	assert.Len(t, FilterAddrs(addrs, IsIPMultiaddr), 2)
	assert.True(t, HasProtocol(addrs[1], P_DNS4))
	assert.False(t, HasProtocol(addrs[1], P_WS))
}

func TestTCPAddrConversion(t *testing.T) {
	ma, err := FromTCPAddr(&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 4001})
	require.NoError(t, err)
	assert.Equal(t, "/ip4/127.0.0.1/tcp/4001", ma.String())

	ma, err = FromNetAddr(&net.TCPAddr{IP: net.ParseIP("::1"), Port: 80})
	require.NoError(t, err)
	assert.Equal(t, "/ip6/::1/tcp/80", ma.String())

	tcpAddr, err := StringCast("/ip6/::1/tcp/80/ws").ToTCPAddr()
	require.NoError(t, err)
	assert.Equal(t, 80, tcpAddr.Port)
	assert.True(t, tcpAddr.IP.Equal(net.IPv6loopback))

	_, err = StringCast("/dns4/example.com/tcp/80").ToTCPAddr()
	assert.Error(t, err)

	_, err = FromNetAddr(&net.UDPAddr{})
	assert.Error(t, err)
}
