package tcp

import (
	"net"

	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
)

// Conn TCP 连接
type Conn struct {
	*net.TCPConn

	localAddr  ma.Multiaddr
	remoteAddr ma.Multiaddr
}

// 确保实现接口
var _ interfaces.Conn = (*Conn)(nil)

// newConn 包装 TCP 连接，并按配置设置套接字选项
func newConn(c net.Conn, cfg Config) (*Conn, error) {
	tcpConn, ok := c.(*net.TCPConn)
	if !ok {
		_ = c.Close()
		return nil, ErrNotTCPConn
	}

	_ = tcpConn.SetNoDelay(cfg.NoDelay)
	if cfg.KeepAlive {
		_ = tcpConn.SetKeepAlive(true)
		_ = tcpConn.SetKeepAlivePeriod(cfg.KeepAlivePeriod)
	}

	local, err := ma.FromNetAddr(tcpConn.LocalAddr())
	if err != nil {
		_ = tcpConn.Close()
		return nil, err
	}
	remote, err := ma.FromNetAddr(tcpConn.RemoteAddr())
	if err != nil {
		_ = tcpConn.Close()
		return nil, err
	}

	return &Conn{
		TCPConn:    tcpConn,
		localAddr:  local,
		remoteAddr: remote,
	}, nil
}

// LocalMultiaddr 返回本地多地址
func (c *Conn) LocalMultiaddr() ma.Multiaddr {
	return c.localAddr
}

// RemoteMultiaddr 返回远端多地址
func (c *Conn) RemoteMultiaddr() ma.Multiaddr {
	return c.remoteAddr
}
