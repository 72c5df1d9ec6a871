package websocket

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

var errAlreadyHijacked = errors.New("websocket: connection already hijacked")

// responseWriter 让 Upgrader 直接在已建立的连接上完成服务端握手
//
// Upgrader 通过 Hijack 取回连接写 101 响应；握手被拒绝时经 Write 写出错误响应。
type responseWriter struct {
	conn net.Conn
	br   *bufio.Reader

	header   http.Header
	status   int
	hijacked bool
}

var (
	_ http.ResponseWriter = (*responseWriter)(nil)
	_ http.Hijacker       = (*responseWriter)(nil)
)

func newResponseWriter(conn net.Conn, br *bufio.Reader) *responseWriter {
	return &responseWriter{
		conn:   conn,
		br:     br,
		header: make(http.Header),
	}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.hijacked {
		return 0, errAlreadyHijacked
	}
	if w.status == 0 {
		w.status = http.StatusOK
	}

	resp := &http.Response{
		StatusCode:    w.status,
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        w.header,
		Body:          io.NopCloser(bytes.NewReader(b)),
		ContentLength: int64(len(b)),
		Close:         true,
	}
	if err := resp.Write(w.conn); err != nil {
		return 0, fmt.Errorf("websocket: write response: %w", err)
	}
	return len(b), nil
}

func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if w.hijacked {
		return nil, nil, errAlreadyHijacked
	}
	w.hijacked = true
	return w.conn, bufio.NewReadWriter(w.br, bufio.NewWriter(w.conn)), nil
}
