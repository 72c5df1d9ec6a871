// Package lib 包含基础设施工具库
//
// 本目录包含与具体传输层无关的通用工具库：
//
//   - multiaddr: 多地址格式解析与组件操作
//   - log: 日志封装
//
// # 与 pkg/ 其他目录的关系
//
//   - interfaces/: 传输能力契约
//   - reactor/: 原生传输栈的执行上下文
//   - lib/: 基础设施工具库（本目录）
//
// # 使用示例
//
//	import (
//	    "github.com/dep2p/go-commontransport/pkg/lib/log"
//	    ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
//	)
package lib
