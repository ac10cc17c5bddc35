package bandwidth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

// ============================================================================
//                              测试辅助
// ============================================================================

func newTestLimiter(t *testing.T) (*Limiter, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	l, err := NewWithClock(DefaultConfig(), clk)
	if err != nil {
		t.Fatalf("NewWithClock() 失败: %v", err)
	}
	return l, clk
}

type throttleResult struct {
	delay time.Duration
	err   error
}

// startThrottle 在后台发起限速调用并等其挂到定时器上
func startThrottle(f func() (time.Duration, error)) chan throttleResult {
	ch := make(chan throttleResult, 1)
	go func() {
		d, err := f()
		ch <- throttleResult{delay: d, err: err}
	}()
	// 等待后台协程注册定时器
	time.Sleep(50 * time.Millisecond)
	return ch
}

func mustResult(t *testing.T, ch chan throttleResult) throttleResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(time.Second):
		t.Fatal("限速调用未在预期时间内返回")
		return throttleResult{}
	}
}

// ============================================================================
//                              基础测试
// ============================================================================

func TestNew_DefaultsUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t)

	stats := l.Stats()
	if stats.DownloadLimit >= 0 {
		t.Errorf("默认下行限速 = %d, want 负值（不限速）", stats.DownloadLimit)
	}
	if stats.UploadLimit >= 0 {
		t.Errorf("默认上行限速 = %d, want 负值（不限速）", stats.UploadLimit)
	}
	if stats.AddedLatency != 0 {
		t.Errorf("默认延迟 = %v, want 0", stats.AddedLatency)
	}
}

func TestNew_ConditionFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Condition = "3g"
	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New() 失败: %v", err)
	}

	stats := l.Stats()
	if stats.DownloadLimit != 93750 {
		t.Errorf("下行限速 = %d, want 93750", stats.DownloadLimit)
	}
	if stats.AddedLatency != 200*time.Millisecond {
		t.Errorf("延迟 = %v, want 200ms", stats.AddedLatency)
	}
}

func TestNew_UnknownCondition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Condition = "6g"
	if _, err := New(cfg); !errors.Is(err, ErrUnknownCondition) {
		t.Errorf("New(未知条件) err = %v, want ErrUnknownCondition", err)
	}
}

// 不限速时立即返回
func TestThrottle_Unlimited(t *testing.T) {
	l, _ := newTestLimiter(t)

	delay, err := l.ThrottleDownload(context.Background(), 1<<20)
	if err != nil {
		t.Fatalf("ThrottleDownload 失败: %v", err)
	}
	if delay != 0 {
		t.Errorf("不限速 delay = %v, want 0", delay)
	}
}

// 零字节不计费不等待，任何限速下都立即返回
func TestThrottle_ZeroBytes(t *testing.T) {
	l, _ := newTestLimiter(t)
	l.SetDownloadLimit(0) // 离线

	delay, err := l.ThrottleDownload(context.Background(), 0)
	if err != nil {
		t.Fatalf("ThrottleDownload 失败: %v", err)
	}
	if delay != 0 {
		t.Errorf("零字节 delay = %v, want 0", delay)
	}
	if got := l.Stats().BytesReceived; got != 0 {
		t.Errorf("零字节不应计费, BytesReceived = %d", got)
	}
}

// ============================================================================
//                              配速测试
// ============================================================================

// 首次传输等满理想时间：1000 B/s 下传 500 字节等 500ms
func TestThrottle_FirstCallWaitsIdealTime(t *testing.T) {
	l, clk := newTestLimiter(t)
	l.SetDownloadLimit(1000)

	ch := startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(context.Background(), 500)
	})

	clk.Add(500 * time.Millisecond)

	r := mustResult(t, ch)
	if r.err != nil {
		t.Fatalf("ThrottleDownload 失败: %v", r.err)
	}
	if r.delay != 500*time.Millisecond {
		t.Errorf("delay = %v, want 500ms", r.delay)
	}
}

// 紧接着的第二次调用从上一时隙末尾继续排队
func TestThrottle_BackToBackAccumulates(t *testing.T) {
	l, clk := newTestLimiter(t)
	l.SetDownloadLimit(1000)

	ch := startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(context.Background(), 500)
	})
	clk.Add(500 * time.Millisecond)
	mustResult(t, ch)

	// 时隙游标在 500ms 处，立刻再传 500 字节需再等满 500ms
	ch = startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(context.Background(), 500)
	})
	clk.Add(500 * time.Millisecond)

	r := mustResult(t, ch)
	if r.delay != 500*time.Millisecond {
		t.Errorf("第二次 delay = %v, want 500ms", r.delay)
	}
}

// 距上一时隙已过去的时间抵扣等待
func TestThrottle_ElapsedTimeCredited(t *testing.T) {
	l, clk := newTestLimiter(t)
	l.SetDownloadLimit(1000)

	ch := startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(context.Background(), 500)
	})
	clk.Add(500 * time.Millisecond)
	mustResult(t, ch)

	// 再空转 200ms，下一次 500 字节只需补 300ms
	clk.Add(200 * time.Millisecond)

	ch = startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(context.Background(), 500)
	})
	clk.Add(300 * time.Millisecond)

	r := mustResult(t, ch)
	if r.delay != 300*time.Millisecond {
		t.Errorf("delay = %v, want 300ms", r.delay)
	}
}

// 空转超过理想时间后不再等待
func TestThrottle_NoWaitAfterLongIdle(t *testing.T) {
	l, clk := newTestLimiter(t)
	l.SetUploadLimit(1000)

	ch := startThrottle(func() (time.Duration, error) {
		return l.ThrottleUpload(context.Background(), 500)
	})
	clk.Add(500 * time.Millisecond)
	mustResult(t, ch)

	clk.Add(10 * time.Second)

	delay, err := l.ThrottleUpload(context.Background(), 500)
	if err != nil {
		t.Fatalf("ThrottleUpload 失败: %v", err)
	}
	if delay != 0 {
		t.Errorf("长时间空转后 delay = %v, want 0", delay)
	}
}

// 附加延迟叠加在带宽延迟之上
func TestThrottle_LatencyAdded(t *testing.T) {
	l, clk := newTestLimiter(t)
	l.SetDownloadLimit(1000)
	l.SetLatency(100 * time.Millisecond)

	ch := startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(context.Background(), 500)
	})
	clk.Add(600 * time.Millisecond)

	r := mustResult(t, ch)
	if r.delay != 600*time.Millisecond {
		t.Errorf("delay = %v, want 600ms（500ms 带宽 + 100ms 延迟）", r.delay)
	}
}

// 上下行时隙互不干扰
func TestThrottle_IndependentDirections(t *testing.T) {
	l, clk := newTestLimiter(t)
	l.SetDownloadLimit(1000)
	l.SetUploadLimit(1000)

	ch := startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(context.Background(), 500)
	})
	clk.Add(500 * time.Millisecond)
	mustResult(t, ch)

	// 上行首次传输，不受下行时隙影响，仍等满理想时间
	ch = startThrottle(func() (time.Duration, error) {
		return l.ThrottleUpload(context.Background(), 500)
	})
	clk.Add(500 * time.Millisecond)

	r := mustResult(t, ch)
	if r.delay != 500*time.Millisecond {
		t.Errorf("上行 delay = %v, want 500ms", r.delay)
	}
}

// ============================================================================
//                              离线与取消测试
// ============================================================================

// 离线模式阻塞，ctx 取消后返回
func TestThrottle_OfflineBlocksUntilCancel(t *testing.T) {
	l, _ := newTestLimiter(t)
	l.SetDownloadLimit(0)

	ctx, cancel := context.WithCancel(context.Background())
	ch := startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(ctx, 100)
	})

	select {
	case r := <-ch:
		t.Fatalf("离线模式不应返回, got %+v", r)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()

	r := mustResult(t, ch)
	if !errors.Is(r.err, context.Canceled) {
		t.Errorf("取消后 err = %v, want context.Canceled", r.err)
	}
}

func TestThrottle_ContextCancel(t *testing.T) {
	l, _ := newTestLimiter(t)
	l.SetUploadLimit(1000)

	ctx, cancel := context.WithCancel(context.Background())
	ch := startThrottle(func() (time.Duration, error) {
		return l.ThrottleUpload(ctx, 5000)
	})

	cancel()

	r := mustResult(t, ch)
	if !errors.Is(r.err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", r.err)
	}
	if r.delay != 0 {
		t.Errorf("取消后 delay = %v, want 0", r.delay)
	}
}

// ============================================================================
//                              统计测试
// ============================================================================

func TestStats_Counters(t *testing.T) {
	l, clk := newTestLimiter(t)

	_, _ = l.ThrottleDownload(context.Background(), 1000)
	_, _ = l.ThrottleDownload(context.Background(), 500)
	_, _ = l.ThrottleUpload(context.Background(), 200)

	clk.Add(3 * time.Second)

	stats := l.Stats()
	if stats.BytesReceived != 1500 {
		t.Errorf("BytesReceived = %d, want 1500", stats.BytesReceived)
	}
	if stats.BytesSent != 200 {
		t.Errorf("BytesSent = %d, want 200", stats.BytesSent)
	}
	if stats.Elapsed != 3*time.Second {
		t.Errorf("Elapsed = %v, want 3s", stats.Elapsed)
	}
}

// 清零后计数归零、时隙游标重置（下一次传输按首次处理）
func TestResetStats(t *testing.T) {
	l, clk := newTestLimiter(t)
	l.SetDownloadLimit(1000)

	ch := startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(context.Background(), 500)
	})
	clk.Add(500 * time.Millisecond)
	mustResult(t, ch)

	l.ResetStats()

	stats := l.Stats()
	if stats.BytesReceived != 0 || stats.BytesSent != 0 {
		t.Errorf("清零后计数 = recv %d / sent %d, want 0/0", stats.BytesReceived, stats.BytesSent)
	}
	if stats.Elapsed != 0 {
		t.Errorf("清零后 Elapsed = %v, want 0", stats.Elapsed)
	}

	// 游标已重置：再次传输等满理想时间
	ch = startThrottle(func() (time.Duration, error) {
		return l.ThrottleDownload(context.Background(), 500)
	})
	clk.Add(500 * time.Millisecond)

	r := mustResult(t, ch)
	if r.delay != 500*time.Millisecond {
		t.Errorf("清零后首次 delay = %v, want 500ms", r.delay)
	}
}

func TestIsOffline(t *testing.T) {
	l, _ := newTestLimiter(t)
	if l.IsOffline() {
		t.Error("默认配置不应为离线")
	}

	l.ApplyCondition(ConditionOffline)
	if !l.IsOffline() {
		t.Error("套用离线条件后应为离线")
	}

	// 单向为 0 不算离线
	l.ApplyCondition(ConditionWiFi)
	l.SetDownloadLimit(0)
	if l.IsOffline() {
		t.Error("仅下行为 0 不应视为离线")
	}
}

func TestApplyCondition(t *testing.T) {
	l, _ := newTestLimiter(t)

	l.ApplyCondition(Condition3G)

	stats := l.Stats()
	if stats.DownloadLimit != 93750 || stats.UploadLimit != 93750 {
		t.Errorf("限速 = %d/%d, want 93750/93750", stats.DownloadLimit, stats.UploadLimit)
	}
	if stats.AddedLatency != 200*time.Millisecond {
		t.Errorf("延迟 = %v, want 200ms", stats.AddedLatency)
	}
}
