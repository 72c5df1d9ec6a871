// Package pending 实现延迟解析的连接句柄
//
// 各层的 Dial 与入站升级都返回 interfaces.PendingConn：
// 工作在 Spawner（通常是 reactor.Reactor）上执行，结果只产生一次。
//
// Wait 的 ctx 被取消视为放弃句柄；放弃之后才建立的连接由句柄关闭，避免泄漏。
package pending
