package testutil

import (
	"net"
	"strings"
	"testing"

	mdns "github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

// StartDNSServer 在回环 UDP 端口上启动权威 DNS 服务器
//
// records 为域名到 IPv4 地址的映射，未知域名返回 NXDOMAIN。
// 返回 "ip:port" 形式的服务器地址，测试结束时关闭。
func StartDNSServer(t *testing.T, records map[string]string) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := mdns.HandlerFunc(func(w mdns.ResponseWriter, req *mdns.Msg) {
		resp := new(mdns.Msg)
		resp.SetReply(req)

		known := false
		for _, q := range req.Question {
			ip, ok := records[strings.TrimSuffix(strings.ToLower(q.Name), ".")]
			if !ok {
				continue
			}
			known = true
			if q.Qtype == mdns.TypeA {
				resp.Answer = append(resp.Answer, &mdns.A{
					Hdr: mdns.RR_Header{Name: q.Name, Rrtype: mdns.TypeA, Class: mdns.ClassINET, Ttl: 60},
					A:   net.ParseIP(ip).To4(),
				})
			}
		}
		if !known {
			resp.Rcode = mdns.RcodeNameError
		}
		_ = w.WriteMsg(resp)
	})

	started := make(chan struct{})
	srv := &mdns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = srv.ActivateAndServe() }()
	<-started
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}
