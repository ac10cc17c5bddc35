package connpool

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
	"github.com/dep2p/go-netstack/pkg/lib/log"
	"github.com/dep2p/go-netstack/pkg/types"
)

var logger = log.Logger("core/connpool")

// Pool 连接池实现
//
// 实现 pkgif.ConnectionPool 接口。
// 空闲连接按端点分桶保存，获取时惰性剔除陈旧连接；
// 每端点通过缓冲通道信号量限制并发连接数，满载时 Acquire 阻塞。
type Pool struct {
	cfg       Config
	transport pkgif.Transport
	clock     clock.Clock

	mu sync.Mutex

	// 空闲连接，按端点分桶，桶内按归还时间升序
	idle map[types.Endpoint][]*pooledConn

	// 活跃连接计数
	active map[types.Endpoint]int

	// 每端点信号量，容量 = MaxConnsPerHost
	sems map[types.Endpoint]chan struct{}

	// 空闲连接总数
	idleTotal int

	closed bool
}

// 确保实现接口
var _ pkgif.ConnectionPool = (*Pool)(nil)

// New 创建连接池
func New(cfg Config, transport pkgif.Transport) (*Pool, error) {
	return NewWithClock(cfg, transport, clock.New())
}

// NewWithClock 创建连接池并指定时钟源（测试用）
func NewWithClock(cfg Config, transport pkgif.Transport, clk clock.Clock) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, ErrNilTransport
	}

	return &Pool{
		cfg:       cfg,
		transport: transport,
		clock:     clk,
		idle:      make(map[types.Endpoint][]*pooledConn),
		active:    make(map[types.Endpoint]int),
		sems:      make(map[types.Endpoint]chan struct{}),
	}, nil
}

// ============================================================================
//                              获取与归还
// ============================================================================

// Acquire 获取一条到指定端点的连接
//
// 优先复用未超时的空闲连接，否则新建。
// 端点活跃连接数达到上限时阻塞，直到有连接被归还或 ctx 取消。
// 拨号失败不占用任何池状态。
func (p *Pool) Acquire(ctx context.Context, ep types.Endpoint) (pkgif.Connection, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	sem := p.endpointSem(ep)
	p.mu.Unlock()

	// 占用端点槽位（可阻塞）
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-sem
		return nil, ErrPoolClosed
	}

	// 惰性剔除陈旧连接后尝试复用
	stale := p.pruneIdleLocked(ep)
	if conn := p.popIdleLocked(ep); conn != nil {
		p.active[ep]++
		p.mu.Unlock()
		closeAll(stale)

		logger.Debug("复用空闲连接", "endpoint", ep.String(), "conn", log.TruncateID(conn.id, 8))
		return conn, nil
	}
	p.mu.Unlock()
	closeAll(stale)

	// 无可复用连接，新建
	tc, err := p.transport.Dial(ctx, ep)
	if err != nil {
		<-sem
		logger.Warn("拨号失败", "endpoint", ep.String(), "error", err)
		return nil, err
	}

	conn := newPooledConn(ep, tc, p.clock.Now())

	p.mu.Lock()
	p.active[ep]++
	p.mu.Unlock()

	logger.Debug("新建连接", "endpoint", ep.String(), "conn", log.TruncateID(conn.id, 8))
	return conn, nil
}

// Release 归还连接
//
// 保活开启且池未满时连接回到空闲桶，否则直接关闭。
// 非本池连接被忽略。
func (p *Pool) Release(conn pkgif.Connection) {
	pc, ok := conn.(*pooledConn)
	if !ok {
		return
	}
	ep := pc.endpoint

	p.mu.Lock()
	p.releaseSlotLocked(ep)

	if p.closed || !p.cfg.EnableKeepAlive {
		p.mu.Unlock()
		_ = pc.close()
		return
	}

	// 全局空闲上限：满了就关闭而非滞留
	if p.idleTotal >= p.cfg.PoolSize {
		p.mu.Unlock()
		_ = pc.close()
		logger.Debug("空闲池已满，关闭连接", "conn", log.TruncateID(pc.id, 8))
		return
	}

	pc.lastUsed = p.clock.Now()
	p.idle[ep] = append(p.idle[ep], pc)
	p.idleTotal++
	p.mu.Unlock()

	logger.Debug("连接已归还", "endpoint", ep.String(), "conn", log.TruncateID(pc.id, 8))
}

// Discard 丢弃连接（请求失败或连接已损坏时使用）
func (p *Pool) Discard(conn pkgif.Connection) {
	pc, ok := conn.(*pooledConn)
	if !ok {
		return
	}

	p.mu.Lock()
	p.releaseSlotLocked(pc.endpoint)
	p.mu.Unlock()

	_ = pc.close()
	logger.Debug("连接已丢弃", "endpoint", pc.endpoint.String(), "conn", log.TruncateID(pc.id, 8))
}

// ============================================================================
//                              统计与关闭
// ============================================================================

// Stats 返回连接池统计快照
func (p *Pool) Stats() pkgif.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := pkgif.PoolStats{
		PerEndpoint: make(map[types.Endpoint]pkgif.EndpointStats),
	}

	for ep, conns := range p.idle {
		es := stats.PerEndpoint[ep]
		es.Idle = len(conns)
		stats.PerEndpoint[ep] = es
		stats.IdleTotal += len(conns)
	}
	for ep, n := range p.active {
		if n == 0 {
			continue
		}
		es := stats.PerEndpoint[ep]
		es.Active = n
		stats.PerEndpoint[ep] = es
		stats.ActiveTotal += n
	}

	return stats
}

// Close 关闭连接池并释放全部空闲连接
//
// 关闭后 Acquire 返回 ErrPoolClosed；已借出的连接在归还时直接关闭。
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true

	var conns []*pooledConn
	for _, bucket := range p.idle {
		conns = append(conns, bucket...)
	}
	p.idle = make(map[types.Endpoint][]*pooledConn)
	p.idleTotal = 0
	p.mu.Unlock()

	var errs error
	for _, c := range conns {
		errs = multierr.Append(errs, c.close())
	}

	logger.Info("连接池已关闭", "closedIdle", len(conns))
	return errs
}

// ============================================================================
//                              内部辅助
// ============================================================================

// endpointSem 返回端点信号量，不存在则创建
//
// 调用方必须持锁。
func (p *Pool) endpointSem(ep types.Endpoint) chan struct{} {
	sem, ok := p.sems[ep]
	if !ok {
		sem = make(chan struct{}, p.cfg.MaxConnsPerHost)
		p.sems[ep] = sem
	}
	return sem
}

// releaseSlotLocked 释放端点槽位并递减活跃计数
//
// 调用方必须持锁。
func (p *Pool) releaseSlotLocked(ep types.Endpoint) {
	if p.active[ep] > 0 {
		p.active[ep]--
	}
	if sem, ok := p.sems[ep]; ok {
		select {
		case <-sem:
		default:
		}
	}
}

// pruneIdleLocked 从端点空闲桶中移出所有陈旧连接
//
// 返回待关闭的陈旧连接，实际关闭由调用方在锁外完成。
// 调用方必须持锁。
func (p *Pool) pruneIdleLocked(ep types.Endpoint) []*pooledConn {
	bucket := p.idle[ep]
	if len(bucket) == 0 {
		return nil
	}

	now := p.clock.Now()
	var kept, stale []*pooledConn
	for _, c := range bucket {
		if now.Sub(c.lastUsed) > p.cfg.IdleTimeout {
			stale = append(stale, c)
		} else {
			kept = append(kept, c)
		}
	}

	if len(stale) == 0 {
		return nil
	}

	if len(kept) == 0 {
		delete(p.idle, ep)
	} else {
		p.idle[ep] = kept
	}
	p.idleTotal -= len(stale)

	logger.Debug("剔除陈旧连接", "endpoint", ep.String(), "count", len(stale))
	return stale
}

// popIdleLocked 取出端点最近归还的空闲连接
//
// 调用方必须持锁。
func (p *Pool) popIdleLocked(ep types.Endpoint) *pooledConn {
	bucket := p.idle[ep]
	if len(bucket) == 0 {
		return nil
	}

	conn := bucket[len(bucket)-1]
	if len(bucket) == 1 {
		delete(p.idle, ep)
	} else {
		p.idle[ep] = bucket[:len(bucket)-1]
	}
	p.idleTotal--
	return conn
}

// closeAll 关闭一组连接
func closeAll(conns []*pooledConn) {
	for _, c := range conns {
		_ = c.close()
	}
}
