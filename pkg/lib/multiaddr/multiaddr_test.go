package multiaddr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPeerID = "QmYyQSo1c1Ym7orWxLYvCrM2EmxFTANf8wXmmE7DWjhx5N"

// TestNewMultiaddr 测试从字符串创建多地址
func TestNewMultiaddr(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"IPv4 + TCP", "/ip4/127.0.0.1/tcp/4001", false},
		{"IPv6 + TCP", "/ip6/::1/tcp/4001", false},
		{"IPv4 + TCP + WS", "/ip4/127.0.0.1/tcp/0/ws", false},
		{"DNS4 + TCP + WSS", "/dns4/example.com/tcp/443/wss", false},
		{"Complex with P2P", "/ip4/1.2.3.4/tcp/4001/p2p/" + testPeerID, false},
		{"Empty", "", true},
		{"No leading slash", "ip4/127.0.0.1", true},
		{"Unknown protocol", "/unknown/value", true},
		{"Incomplete", "/ip4", true},
		{"Bad port", "/ip4/127.0.0.1/tcp/70000", true},
		{"Bad peer ID", "/p2p/0OIl", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMultiaddr(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestNewMultiaddrBytes 测试从字节创建多地址
func TestNewMultiaddrBytes(t *testing.T) {
	// /ip4/127.0.0.1/tcp/4001 的二进制表示
	valid := []byte{0x04, 127, 0, 0, 1, 0x06, 0x0f, 0xa1}

	ma, err := NewMultiaddrBytes(valid)
	require.NoError(t, err)
	assert.Equal(t, "/ip4/127.0.0.1/tcp/4001", ma.String())

	// 构造后修改输入不影响地址
	valid[1] = 10
	assert.Equal(t, "/ip4/127.0.0.1/tcp/4001", ma.String())

	_, err = NewMultiaddrBytes(nil)
	assert.ErrorIs(t, err, ErrEmptyMultiaddr)

	_, err = NewMultiaddrBytes([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)

	// 截断的端口
	_, err = NewMultiaddrBytes([]byte{0x04, 127, 0, 0, 1, 0x06, 0x0f})
	assert.ErrorIs(t, err, ErrInvalidMultiaddr)
}

// TestRoundTrip 测试字符串与二进制之间的往返
func TestRoundTrip(t *testing.T) {
	addrs := []string{
		"/ip4/127.0.0.1/tcp/4001",
		"/ip6/::1/tcp/4001/ws",
		"/ip6/fe80::1/ip6zone/eth0/tcp/80",
		"/dns/example.com/tcp/443/wss",
		"/dns6/localhost/tcp/8080/ws/p2p/" + testPeerID,
		"/unix/tmp/transport.sock",
	}

	for _, s := range addrs {
		t.Run(s, func(t *testing.T) {
			ma, err := NewMultiaddr(s)
			require.NoError(t, err)
			assert.Equal(t, s, ma.String())

			back, err := NewMultiaddrBytes(ma.Bytes())
			require.NoError(t, err)
			assert.True(t, ma.Equal(back))
		})
	}
}

func TestMultiaddr_Equal(t *testing.T) {
	a := StringCast("/ip4/127.0.0.1/tcp/80/ws")
	b := StringCast("/ip4/127.0.0.1/tcp/80/ws")
	c := StringCast("/ip4/127.0.0.1/tcp/81/ws")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestMultiaddr_EncapsulateDecapsulate(t *testing.T) {
	base := StringCast("/ip4/127.0.0.1/tcp/4001")
	ws := StringCast("/ws")

	full := base.Encapsulate(ws)
	assert.Equal(t, "/ip4/127.0.0.1/tcp/4001/ws", full.String())
	assert.True(t, full.Decapsulate(ws).Equal(base))

	// 不匹配的后缀保持原样
	assert.True(t, full.Decapsulate(StringCast("/wss")).Equal(full))

	// 完全移除
	assert.Nil(t, ws.Decapsulate(ws))
}

func TestMultiaddr_ValueForProtocol(t *testing.T) {
	ma := StringCast("/dns4/example.com/tcp/443/wss")

	v, err := ma.ValueForProtocol(P_DNS4)
	require.NoError(t, err)
	assert.Equal(t, "example.com", v)

	v, err = ma.ValueForProtocol(P_TCP)
	require.NoError(t, err)
	assert.Equal(t, "443", v)

	v, err = ma.ValueForProtocol(P_WSS)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = ma.ValueForProtocol(P_IP4)
	assert.Error(t, err)
}

func TestMultiaddr_Protocols(t *testing.T) {
	ma := StringCast("/ip4/127.0.0.1/tcp/80/ws")
	ps := ma.Protocols()
	require.Len(t, ps, 3)
	assert.Equal(t, "ip4", ps[0].Name)
	assert.Equal(t, "tcp", ps[1].Name)
	assert.Equal(t, "ws", ps[2].Name)
}

func TestMultiaddr_JSON(t *testing.T) {
	ma := StringCast("/ip4/10.0.0.1/tcp/9000/ws")

	data, err := json.Marshal(ma)
	require.NoError(t, err)
	assert.Equal(t, `"/ip4/10.0.0.1/tcp/9000/ws"`, string(data))

	var back multiaddr
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, ma.Equal(&back))
}

func TestProtocolWithName(t *testing.T) {
	assert.Equal(t, P_P2P, ProtocolWithName("ipfs").Code)
	assert.Equal(t, P_WS, ProtocolWithName("ws").Code)
	assert.Equal(t, 0, ProtocolWithName("nope").Code)
	assert.Equal(t, "dns6", ProtocolWithCode(P_DNS6).String())
}
