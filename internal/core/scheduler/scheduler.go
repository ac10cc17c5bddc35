package scheduler

import (
	"sync"

	"github.com/dep2p/go-netstack/pkg/lib/log"
	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
	"github.com/dep2p/go-netstack/pkg/types"
)

var logger = log.Logger("core/scheduler")

// pendingRequest 等待中的请求
type pendingRequest struct {
	id  types.RequestID
	req *types.Request
}

// Scheduler 请求调度器实现
//
// 实现 pkgif.RequestScheduler 接口。
// 三级 FIFO 队列 + 活跃集合，全部状态由单个互斥锁保护；
// 任何方法都不会跨越挂起点持锁。
type Scheduler struct {
	mu sync.Mutex

	// 按优先级索引的等待队列（types.PriorityHigh = 0 起）
	queues [3][]pendingRequest

	// 活跃请求集合（按 ID）
	active map[types.RequestID]struct{}

	// 并发上限
	maxConcurrent int

	// 下一个待分配的请求 ID（单调递增，永不复用）
	nextID types.RequestID
}

// 确保实现接口
var _ pkgif.RequestScheduler = (*Scheduler)(nil)

// New 创建请求调度器
func New(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Scheduler{
		active:        make(map[types.RequestID]struct{}),
		maxConcurrent: cfg.MaxConcurrent,
		nextID:        1,
	}, nil
}

// Schedule 将请求加入对应优先级队列
//
// 永不失败；未知优先级按 Low 处理。
func (s *Scheduler) Schedule(req *types.Request, priority types.Priority) types.RequestID {
	if !priority.Valid() {
		priority = types.PriorityLow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	s.queues[priority] = append(s.queues[priority], pendingRequest{id: id, req: req})

	logger.Debug("请求已入队", "id", uint64(id), "priority", priority.String())
	return id
}

// NextRequest 取出下一个可执行的请求
//
// 并发预算耗尽或无等待请求时返回 (nil, false)。
// 出队的请求在返回前即转入活跃集合——槽位从此刻起被占用。
func (s *Scheduler) NextRequest() (*types.ScheduledRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.active) >= s.maxConcurrent {
		return nil, false
	}

	// 严格优先级：High → Medium → Low
	for p := range s.queues {
		q := s.queues[p]
		if len(q) == 0 {
			continue
		}

		head := q[0]
		s.queues[p] = q[1:]
		s.active[head.id] = struct{}{}

		logger.Debug("请求已出队", "id", uint64(head.id), "active", len(s.active))
		return &types.ScheduledRequest{ID: head.id, Request: head.req}, true
	}

	return nil, false
}

// Complete 上报请求完成，释放其并发槽位
func (s *Scheduler) Complete(id types.RequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[id]; !ok {
		return ErrRequestNotFound
	}

	delete(s.active, id)
	logger.Debug("请求已完成", "id", uint64(id), "active", len(s.active))
	return nil
}

// CancelRequest 取消请求
//
// 先查活跃集合（立即释放槽位），再线性扫描各等待队列；
// 未知 ID 返回 ErrRequestNotFound。
func (s *Scheduler) CancelRequest(id types.RequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[id]; ok {
		delete(s.active, id)
		logger.Debug("活跃请求已取消", "id", uint64(id))
		return nil
	}

	for p := range s.queues {
		if s.removeFromQueue(p, id) {
			logger.Debug("排队请求已取消", "id", uint64(id))
			return nil
		}
	}

	return ErrRequestNotFound
}

// SetMaxConcurrent 调整并发上限
//
// 在下一次 NextRequest 调用时生效；不会追溯驱逐已活跃的请求。
func (s *Scheduler) SetMaxConcurrent(n int) {
	if n <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxConcurrent = n
	logger.Info("并发上限已更新", "max", n, "active", len(s.active))
}

// Stats 返回调度器统计快照
func (s *Scheduler) Stats() pkgif.SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pkgif.SchedulerStats{
		PendingHigh:   len(s.queues[types.PriorityHigh]),
		PendingMedium: len(s.queues[types.PriorityMedium]),
		PendingLow:    len(s.queues[types.PriorityLow]),
		Active:        len(s.active),
		MaxConcurrent: s.maxConcurrent,
	}
}

// removeFromQueue 从指定队列移除 ID 对应的请求
//
// 调用方必须持锁。
func (s *Scheduler) removeFromQueue(p int, id types.RequestID) bool {
	q := s.queues[p]
	for i := range q {
		if q[i].id == id {
			s.queues[p] = append(q[:i], q[i+1:]...)
			return true
		}
	}
	return false
}
