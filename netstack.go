package netstack

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/dep2p/go-netstack/config"
	"github.com/dep2p/go-netstack/internal/core/bandwidth"
	"github.com/dep2p/go-netstack/internal/core/connpool"
	"github.com/dep2p/go-netstack/internal/core/metrics"
	"github.com/dep2p/go-netstack/internal/core/respcache"
	"github.com/dep2p/go-netstack/internal/core/scheduler"
	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
	"github.com/dep2p/go-netstack/pkg/lib/log"
	"github.com/dep2p/go-netstack/pkg/types"
)

var logger = log.Logger("netstack")

// startTimeout Fx 应用启动超时
const startTimeout = 30 * time.Second

// Stack 客户端网络栈
//
// 聚合请求调度、连接复用、响应缓存与带宽限速四个组件，
// Fetch 将一次请求完整地穿过这条管线。
// 组件由 fx 容器组装，生命周期随 Start/Close 推进。
type Stack struct {
	mu sync.Mutex

	cfg *config.Config
	app fxApp

	// 组件（由 fx 注入）
	scheduler *scheduler.Scheduler
	pool      *connpool.Pool
	cache     *respcache.Cache
	limiter   *bandwidth.Limiter
	collector *metrics.Collector
	transport pkgif.Transport

	// 准入等待表：请求 ID → 放行信号
	waitersMu sync.Mutex
	waiters   map[types.RequestID]chan struct{}

	// 调度泵
	kick   chan struct{}
	done   chan struct{}
	pumpWG sync.WaitGroup

	started bool
	closed  bool
}

// fxApp 抽象 fx.App 的生命周期，便于测试
type fxApp interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// StackStats 网络栈统计汇总
type StackStats struct {
	// Scheduler 调度器统计
	Scheduler pkgif.SchedulerStats

	// Pool 连接池统计
	Pool pkgif.PoolStats

	// Bandwidth 带宽统计
	Bandwidth pkgif.BandwidthStats

	// CacheSizeBytes 缓存占用字节数
	CacheSizeBytes uint64

	// CacheEntries 缓存条目数
	CacheEntries int
}

// New 创建网络栈
//
// 必须通过 WithTransport 提供传输层；其余组件按默认配置组装。
func New(opts ...Option) (*Stack, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	s := &Stack{
		cfg:     o.cfg,
		waiters: make(map[types.RequestID]chan struct{}),
		kick:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	app, err := buildFxApp(o, s)
	if err != nil {
		return nil, err
	}
	s.app = app

	return s, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期管理
// ════════════════════════════════════════════════════════════════════════════

// Start 启动网络栈
//
// 启动 Fx 应用并拉起调度泵。重复调用返回 ErrAlreadyStarted。
func (s *Stack) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStackClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	if err := s.app.Start(startCtx); err != nil {
		return fmt.Errorf("netstack start failed: %w", err)
	}

	s.pumpWG.Add(1)
	go s.dispatchPump()

	s.started = true
	logger.Info("网络栈已启动",
		"maxConcurrent", s.cfg.Scheduler.MaxConcurrent,
		"cacheEnabled", s.cfg.Cache.Enabled)
	return nil
}

// Close 关闭网络栈
//
// 停止调度泵并关停所有组件（连接池随 Fx OnStop 关闭）。幂等。
func (s *Stack) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	started := s.started
	s.mu.Unlock()

	close(s.done)
	if started {
		s.pumpWG.Wait()
	}

	var errs error
	if started {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		errs = multierr.Append(errs, s.app.Stop(stopCtx))
	}

	logger.Info("网络栈已关闭")
	return errs
}

// ════════════════════════════════════════════════════════════════════════════
//                              调度泵
// ════════════════════════════════════════════════════════════════════════════

// dispatchPump 调度泵主循环
//
// 每次被踢醒后反复出队，直到并发预算耗尽或无等待请求。
func (s *Stack) dispatchPump() {
	defer s.pumpWG.Done()

	for {
		select {
		case <-s.done:
			return
		case <-s.kick:
		}
		s.dispatchPending()
	}
}

// dispatchPending 放行所有当前可出队的请求
func (s *Stack) dispatchPending() {
	for {
		sr, ok := s.scheduler.NextRequest()
		if !ok {
			return
		}

		s.waitersMu.Lock()
		admit, waiting := s.waiters[sr.ID]
		if waiting {
			delete(s.waiters, sr.ID)
		}
		s.waitersMu.Unlock()

		if waiting {
			close(admit)
			continue
		}

		// 等待方已在出队前离开（取消竞态），立即释放槽位
		_ = s.scheduler.Complete(sr.ID)
	}
}

// kickPump 踢醒调度泵
func (s *Stack) kickPump() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              运行时调整
// ════════════════════════════════════════════════════════════════════════════

// SetMaxConcurrent 调整并发请求上限
//
// 上调后立即踢醒调度泵放行排队请求。
func (s *Stack) SetMaxConcurrent(n int) {
	s.scheduler.SetMaxConcurrent(n)
	s.kickPump()
}

// SetDownloadLimit 设置下行限速（字节/秒）
func (s *Stack) SetDownloadLimit(bytesPerSec int64) {
	s.limiter.SetDownloadLimit(bytesPerSec)
}

// SetUploadLimit 设置上行限速（字节/秒）
func (s *Stack) SetUploadLimit(bytesPerSec int64) {
	s.limiter.SetUploadLimit(bytesPerSec)
}

// SetLatency 设置附加延迟
func (s *Stack) SetLatency(d time.Duration) {
	s.limiter.SetLatency(d)
}

// ApplyCondition 套用一组网络条件
func (s *Stack) ApplyCondition(cond bandwidth.Condition) {
	s.limiter.ApplyCondition(cond)
}

// ApplyConditionByName 按名称套用预置网络条件
func (s *Stack) ApplyConditionByName(name string) error {
	cond, err := bandwidth.ConditionByName(name)
	if err != nil {
		return err
	}
	s.limiter.ApplyCondition(cond)
	return nil
}

// ClearCache 清空响应缓存
func (s *Stack) ClearCache() {
	s.cache.Clear()
}

// ResetBandwidthStats 清零带宽统计
func (s *Stack) ResetBandwidthStats() {
	s.limiter.ResetStats()
}

// ════════════════════════════════════════════════════════════════════════════
//                              统计与访问器
// ════════════════════════════════════════════════════════════════════════════

// Stats 返回网络栈统计汇总
func (s *Stack) Stats() StackStats {
	return StackStats{
		Scheduler:      s.scheduler.Stats(),
		Pool:           s.pool.Stats(),
		Bandwidth:      s.limiter.Stats(),
		CacheSizeBytes: s.cache.CurrentSize(),
		CacheEntries:   s.cache.EntryCount(),
	}
}

// Scheduler 返回请求调度器
func (s *Stack) Scheduler() pkgif.RequestScheduler {
	return s.scheduler
}

// Pool 返回连接池
func (s *Stack) Pool() pkgif.ConnectionPool {
	return s.pool
}

// Cache 返回响应缓存
func (s *Stack) Cache() pkgif.ResponseCache {
	return s.cache
}

// Bandwidth 返回带宽限速器
func (s *Stack) Bandwidth() pkgif.BandwidthLimiter {
	return s.limiter
}

// MetricsCollector 返回 Prometheus 采集器
//
// 未启用指标时返回 nil；由调用方注册到自己的 Registry。
func (s *Stack) MetricsCollector() *metrics.Collector {
	return s.collector
}
