// Package scheduler 实现请求调度器
//
// # 核心功能
//
// 1. 优先级准入控制
//   - 三级 FIFO 队列：High / Medium / Low
//   - 严格优先级：High 队列非空时永远先出 High
//   - 同级内先进先出
//
// 2. 并发预算
//   - 活跃请求数 ≤ MaxConcurrent 恒成立
//   - 槽位在 NextRequest 返回的一刻即被占用
//   - Complete / CancelRequest 释放槽位
//
// 3. 取消
//   - 活跃请求：立即释放槽位
//   - 排队请求：线性扫描移除（队列小、取消罕见）
//   - 未知 ID：返回 ErrRequestNotFound
//
// # 快速开始
//
//	sched := scheduler.New(scheduler.Config{MaxConcurrent: 6})
//
//	id := sched.Schedule(req, types.PriorityHigh)
//	if sr, ok := sched.NextRequest(); ok {
//	    // 执行 sr.Request ...
//	    _ = sched.Complete(sr.ID)
//	}
//	_ = sched.CancelRequest(id) // 已完成时返回 ErrRequestNotFound
//
// # 注意事项
//
// 1. 线程安全: 所有方法并发安全
// 2. 永不挂起: 所有方法都在锁内同步完成并立即返回
// 3. 不防饿死: 持续的高优先级流量可以无限期推迟低优先级请求，
//    需要公平性的调用方应自行限制高优先级提交速率
// 4. 无超时: 卡住的活跃请求会一直占用槽位，直到驱动方显式
//    Complete 或 CancelRequest
package scheduler
