package netstack

import (
	"context"

	"github.com/dep2p/go-netstack/pkg/types"
)

// Fetch 发起一次请求并等待响应
//
// 请求完整穿过资源管线：
//  1. 离线模式直接拒绝
//  2. 缓存查询（GET/HEAD），命中直接返回
//  3. 进入调度队列，等待优先级准入
//  4. 从连接池获取到目标端点的连接
//  5. 上行限速 → 收发 → 下行限速
//  6. 归还连接，2xx 的 GET/HEAD 响应写入缓存
//
// ctx 取消在任何阶段都会使请求尽快退出并释放已占用的资源。
func (s *Stack) Fetch(ctx context.Context, req *types.Request, priority types.Priority) (*types.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if err := s.ensureRunning(); err != nil {
		return nil, err
	}
	if err := req.Endpoint.Validate(); err != nil {
		return nil, err
	}

	// 离线模式在发起任何网络活动前直接拒绝
	if s.limiter.IsOffline() {
		logger.Debug("离线模式，拒绝请求", "method", req.Method, "url", req.URL)
		return nil, ErrNetworkOffline
	}

	// 缓存命中则不消耗任何调度与连接资源
	if cacheable(req) {
		if cached := s.cache.Get(req); cached != nil {
			logger.Debug("缓存命中", "method", req.Method, "url", req.URL)
			return cached.Response, nil
		}
	}

	id, admit := s.enqueue(req, priority)

	select {
	case <-admit:
	case <-ctx.Done():
		s.abandon(id)
		return nil, ctx.Err()
	case <-s.done:
		s.abandon(id)
		return nil, ErrStackClosed
	}

	resp, err := s.execute(ctx, req)

	if cerr := s.scheduler.Complete(id); cerr == nil {
		s.kickPump()
	}

	if err != nil {
		return nil, err
	}

	if cacheable(req) && resp.Success() {
		s.cache.Store(req, resp)
	}
	return resp, nil
}

// enqueue 将请求送入调度队列并登记准入等待
func (s *Stack) enqueue(req *types.Request, priority types.Priority) (types.RequestID, chan struct{}) {
	admit := make(chan struct{})

	s.waitersMu.Lock()
	id := s.scheduler.Schedule(req, priority)
	s.waiters[id] = admit
	s.waitersMu.Unlock()

	s.kickPump()
	return id, admit
}

// abandon 撤销一个未获准入（或刚获准入）的请求
func (s *Stack) abandon(id types.RequestID) {
	s.waitersMu.Lock()
	delete(s.waiters, id)
	s.waitersMu.Unlock()

	// 放行与取消可能竞态：ID 此刻在队列或活跃集合中，两种情况都由调度器处理
	if err := s.scheduler.CancelRequest(id); err == nil {
		s.kickPump()
	}
}

// execute 在连接与带宽约束下执行一次收发
func (s *Stack) execute(ctx context.Context, req *types.Request) (*types.Response, error) {
	conn, err := s.pool.Acquire(ctx, req.Endpoint)
	if err != nil {
		return nil, err
	}

	if _, err := s.limiter.ThrottleUpload(ctx, req.BodySize()); err != nil {
		s.pool.Discard(conn)
		return nil, err
	}

	resp, err := s.transport.RoundTrip(ctx, conn.Transport(), req)
	if err != nil {
		s.pool.Discard(conn)
		return nil, err
	}

	if _, err := s.limiter.ThrottleDownload(ctx, resp.BodySize()); err != nil {
		s.pool.Discard(conn)
		return nil, err
	}

	s.pool.Release(conn)
	return resp, nil
}

// ensureRunning 检查网络栈处于运行状态
func (s *Stack) ensureRunning() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStackClosed
	}
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// cacheable 判断请求是否走缓存
func cacheable(req *types.Request) bool {
	return req.Method == "GET" || req.Method == "HEAD"
}
