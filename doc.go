// Package netstack 提供客户端网络栈的资源管理核心
//
// 核心组件：
//   - 请求调度器：优先级准入控制与并发预算
//   - 连接池：按端点复用连接，惰性回收空闲连接
//   - 响应缓存：TTL 与 LRU 双重淘汰的有界缓存
//   - 带宽限速器：基于时隙预约的配速与网络条件模拟
//
// 快速开始：
//
//	stack, err := netstack.New(
//		netstack.WithTransport(transport),
//	)
//	if err != nil {
//		return err
//	}
//	if err := stack.Start(ctx); err != nil {
//		return err
//	}
//	defer stack.Close()
//
//	resp, err := stack.Fetch(ctx, req, types.PriorityHigh)
//
// 组件由 fx 容器组装，各自可通过 Option 单独配置。
package netstack
