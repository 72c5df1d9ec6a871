package metrics

import (
	"github.com/dep2p/go-commontransport/pkg/interfaces"
)

// CountingConn 统计读写字节数的连接包装
type CountingConn struct {
	interfaces.Conn

	reporter Reporter
	layer    string
}

// NewCountingConn 包装连接
//
// reporter 为 nil 时原样返回 conn。
func NewCountingConn(conn interfaces.Conn, reporter Reporter, layer string) interfaces.Conn {
	if reporter == nil {
		return conn
	}
	return &CountingConn{Conn: conn, reporter: reporter, layer: layer}
}

// Read 读取并计入入站字节
func (c *CountingConn) Read(b []byte) (int, error) {
	n, err := c.Conn.Read(b)
	if n > 0 {
		c.reporter.LogRecv(c.layer, int64(n))
	}
	return n, err
}

// Write 写入并计入出站字节
func (c *CountingConn) Write(b []byte) (int, error) {
	n, err := c.Conn.Write(b)
	if n > 0 {
		c.reporter.LogSent(c.layer, int64(n))
	}
	return n, err
}

// Unwrap 返回被包装的连接
func (c *CountingConn) Unwrap() interfaces.Conn {
	return c.Conn
}
