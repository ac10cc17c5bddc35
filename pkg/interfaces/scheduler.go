package interfaces

import (
	"github.com/dep2p/go-netstack/pkg/types"
)

// RequestScheduler 请求调度器
//
// 基于优先级的准入控制：三级 FIFO 队列（High/Medium/Low）加
// 并发上限。严格优先级调度，同级内先进先出；不做低优先级的
// 防饿死提升——持续的高优先级流量可以无限期推迟低优先级请求，
// 这是刻意的简单性取舍，需要公平性的调用方应自行限制高优先级
// 的提交速率。
//
// 所有方法并发安全，且都是同步、锁内完成、立即返回的，
// 永远不会挂起调用方。
type RequestScheduler interface {
	// Schedule 将请求加入对应优先级队列
	//
	// 永不失败，返回全新的唯一请求 ID。
	Schedule(req *types.Request, priority types.Priority) types.RequestID

	// NextRequest 取出下一个可执行的请求
	//
	// 若活跃请求数已达并发上限，或所有队列为空，返回 (nil, false)。
	// 并发槽位从本方法返回的那一刻起即被占用，而不是等调用方
	// 稍后 Complete 时才占用。
	NextRequest() (*types.ScheduledRequest, bool)

	// Complete 上报请求完成，释放其并发槽位
	//
	// 未知 ID 返回 ErrRequestNotFound。
	Complete(id types.RequestID) error

	// CancelRequest 取消请求
	//
	// 请求无论在活跃集合（立即释放槽位）还是任一等待队列中
	// 都会被移除；未知 ID 返回 ErrRequestNotFound（表示已完成
	// 或 ID 无效）。
	CancelRequest(id types.RequestID) error

	// SetMaxConcurrent 调整并发上限
	//
	// 在下一次 NextRequest 调用时生效；下调到低于当前活跃数时
	// 不会追溯驱逐已活跃的请求。
	SetMaxConcurrent(n int)

	// Stats 返回调度器统计快照
	Stats() SchedulerStats
}

// SchedulerStats 调度器统计快照
type SchedulerStats struct {
	// Pending 各优先级等待中的请求数（High/Medium/Low）
	PendingHigh   int
	PendingMedium int
	PendingLow    int

	// Active 当前活跃请求数
	Active int

	// MaxConcurrent 当前并发上限
	MaxConcurrent int
}

// PendingTotal 返回所有队列中等待的请求总数
func (s SchedulerStats) PendingTotal() int {
	return s.PendingHigh + s.PendingMedium + s.PendingLow
}
