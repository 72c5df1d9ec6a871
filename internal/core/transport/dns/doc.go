// Package dns 实现 DNS 解析传输层
//
// dns 层包装一个内层传输：带 /dns、/dns4、/dns6 段的地址在拨号时被解析为 IP，
// 再交给内层拨号；其余地址原样转交内层。
//
// # 解析规则
//
//   - /dns4/<host>: 查询 A 记录
//   - /dns6/<host>: 查询 AAAA 记录
//   - /dns/<host>: 先 A 后 AAAA，取第一个结果
//
// localhost 与 IP 字面量在本地直接应答，不发出查询。
//
// # 使用示例
//
//	resolver := dns.NewResolver(dns.DefaultConfig())
//	transport := dns.NewTransport(tcpTransport, resolver, rt)
//
//	pc, err := transport.Dial(ma.StringCast("/dns4/example.com/tcp/80"))
//
// # 拒绝语义
//
// 同步阶段内层的拒绝会被重新包装为 dns 层的拒绝，归还的传输携带内层归还的值。
// 解析完成之后内层才拒绝时，已经无法归还传输，句柄返回包装了
// interfaces.ErrUnsupportedAddress 的普通错误。
package dns
