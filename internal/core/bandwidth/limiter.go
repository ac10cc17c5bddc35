package bandwidth

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
	"github.com/dep2p/go-netstack/pkg/lib/log"
)

var logger = log.Logger("core/bandwidth")

// 离线模式的等待时长，一年，等效于无限
const offlineDelay = 365 * 24 * time.Hour

// Limiter 带宽限速器实现
//
// 实现 pkgif.BandwidthLimiter 接口。
// 上下行各自维护一个时隙游标：每次收发按字节数计算理想传输时间，
// 在休眠前就把游标推进到 now + delay，后续调用据此排队，
// 并发场景下延迟自然累积而不会超发。
type Limiter struct {
	clock clock.Clock

	mu sync.Mutex

	// 限速值（字节/秒），0 为离线，负值不限速
	downloadLimit int64
	uploadLimit   int64

	// 每次收发附加的延迟
	latency time.Duration

	// 上下行时隙游标，零值表示尚未发生过传输
	lastDownloadSlot time.Time
	lastUploadSlot   time.Time

	stats tracker
}

// 确保实现接口
var _ pkgif.BandwidthLimiter = (*Limiter)(nil)

// New 创建带宽限速器
func New(cfg Config) (*Limiter, error) {
	return NewWithClock(cfg, clock.New())
}

// NewWithClock 创建带宽限速器并指定时钟源（测试用）
func NewWithClock(cfg Config, clk clock.Clock) (*Limiter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Limiter{
		clock:         clk,
		downloadLimit: cfg.DownloadLimitBps,
		uploadLimit:   cfg.UploadLimitBps,
		latency:       cfg.Latency,
		stats:         newTracker(clk.Now()),
	}

	if cfg.Condition != "" {
		cond, err := ConditionByName(cfg.Condition)
		if err != nil {
			return nil, err
		}
		l.ApplyCondition(cond)
	}

	return l, nil
}

// ============================================================================
//                              限速设置
// ============================================================================

// SetDownloadLimit 设置下行限速（字节/秒）
func (l *Limiter) SetDownloadLimit(bytesPerSec int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.downloadLimit = bytesPerSec
	logger.Info("下行限速已更新", "bytesPerSec", bytesPerSec)
}

// SetUploadLimit 设置上行限速（字节/秒）
func (l *Limiter) SetUploadLimit(bytesPerSec int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.uploadLimit = bytesPerSec
	logger.Info("上行限速已更新", "bytesPerSec", bytesPerSec)
}

// SetLatency 设置附加延迟
func (l *Limiter) SetLatency(latency time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.latency = latency
	logger.Info("附加延迟已更新", "latency", latency)
}

// ApplyCondition 套用一组网络条件
//
// 三项参数在同一临界区内更新，不会出现半套用状态。
func (l *Limiter) ApplyCondition(cond Condition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.downloadLimit = cond.DownloadBytesPerSec
	l.uploadLimit = cond.UploadBytesPerSec
	l.latency = cond.Latency
	logger.Info("网络条件已套用", "condition", cond.Name)
}

// IsOffline 返回当前是否处于离线模式（上下行限速均为 0）
func (l *Limiter) IsOffline() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.downloadLimit == 0 && l.uploadLimit == 0
}

// ============================================================================
//                              限速执行
// ============================================================================

// ThrottleDownload 按下行限速对 n 字节的接收计费并等待
//
// 返回实际施加的延迟（含附加延迟）。
// n 为 0 时不计费不等待；ctx 取消时提前返回 ctx.Err()。
func (l *Limiter) ThrottleDownload(ctx context.Context, n uint64) (time.Duration, error) {
	if n == 0 {
		return 0, nil
	}

	l.mu.Lock()
	l.stats.recordDownload(n)
	delay := l.reserveLocked(l.downloadLimit, &l.lastDownloadSlot, n)
	total := delay + l.latency
	l.mu.Unlock()

	return l.wait(ctx, total)
}

// ThrottleUpload 按上行限速对 n 字节的发送计费并等待
//
// 返回实际施加的延迟（含附加延迟）。
// n 为 0 时不计费不等待；ctx 取消时提前返回 ctx.Err()。
func (l *Limiter) ThrottleUpload(ctx context.Context, n uint64) (time.Duration, error) {
	if n == 0 {
		return 0, nil
	}

	l.mu.Lock()
	l.stats.recordUpload(n)
	delay := l.reserveLocked(l.uploadLimit, &l.lastUploadSlot, n)
	total := delay + l.latency
	l.mu.Unlock()

	return l.wait(ctx, total)
}

// reserveLocked 计算带宽延迟并预约时隙
//
// 时隙游标在返回前即推进到 now + delay，休眠在锁外进行。
// 调用方必须持锁。
func (l *Limiter) reserveLocked(limit int64, slot *time.Time, n uint64) time.Duration {
	now := l.clock.Now()

	var delay time.Duration
	switch {
	case limit < 0:
		// 不限速
	case limit == 0:
		// 离线
		delay = offlineDelay
	default:
		ideal := time.Duration(float64(n) / float64(limit) * float64(time.Second))
		if slot.IsZero() {
			// 首次传输等满理想时间
			delay = ideal
		} else {
			elapsed := now.Sub(*slot)
			if elapsed < 0 {
				elapsed = 0
			}
			if elapsed < ideal {
				delay = ideal - elapsed
			}
		}
	}

	*slot = now.Add(delay)
	return delay
}

// wait 休眠指定时长，可被 ctx 打断
func (l *Limiter) wait(ctx context.Context, total time.Duration) (time.Duration, error) {
	if total <= 0 {
		return 0, nil
	}

	timer := l.clock.Timer(total)
	defer timer.Stop()

	select {
	case <-timer.C:
		return total, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// ============================================================================
//                              统计
// ============================================================================

// Stats 返回带宽统计快照
func (l *Limiter) Stats() pkgif.BandwidthStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	return pkgif.BandwidthStats{
		DownloadLimit: l.downloadLimit,
		UploadLimit:   l.uploadLimit,
		AddedLatency:  l.latency,
		BytesSent:     l.stats.bytesSent,
		BytesReceived: l.stats.bytesReceived,
		Elapsed:       l.stats.elapsed(l.clock.Now()),
	}
}

// ResetStats 清零统计并重置时隙游标
func (l *Limiter) ResetStats() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stats.reset(l.clock.Now())
	l.lastDownloadSlot = time.Time{}
	l.lastUploadSlot = time.Time{}
	logger.Info("带宽统计已清零")
}
