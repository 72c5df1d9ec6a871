// Package browser 实现受限宿主（浏览器）上的 WebSocket 传输
//
// 浏览器不允许打开原始套接字，也不允许监听，
// 连接只能通过宿主提供的 WebSocket 能力建立：
//
//   - ListenOn 总是拒绝
//   - Dial 只接受 /<ip4|ip6|dns|dns4|dns6>/<host>/tcp/<port>/<ws|wss>，
//     转换为 ws[s]://host:port/ 后交给 HostDialer
//   - 名称解析由宿主完成，本层不做 DNS 查询
//
// 地址处理与宿主无关，可以在任何平台上测试；
// 默认的 HostDialer 只在 js 构建下提供（见 host_js.go）。
package browser
