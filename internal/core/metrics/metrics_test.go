package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dep2p/go-netstack/internal/core/bandwidth"
	"github.com/dep2p/go-netstack/internal/core/connpool"
	"github.com/dep2p/go-netstack/internal/core/respcache"
	"github.com/dep2p/go-netstack/internal/core/scheduler"
	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
	"github.com/dep2p/go-netstack/pkg/types"
)

// nopConn 测试用传输连接
type nopConn struct{}

func (nopConn) Close() error { return nil }

// nopTransport 测试用传输层
type nopTransport struct{}

func (nopTransport) Dial(context.Context, types.Endpoint) (pkgif.TransportConn, error) {
	return nopConn{}, nil
}

func (nopTransport) RoundTrip(context.Context, pkgif.TransportConn, *types.Request) (*types.Response, error) {
	return &types.Response{Status: 200}, nil
}

func newTestCollector(t *testing.T) *Collector {
	t.Helper()

	sched, err := scheduler.New(scheduler.DefaultConfig())
	if err != nil {
		t.Fatalf("scheduler.New 失败: %v", err)
	}
	pool, err := connpool.New(connpool.DefaultConfig(), nopTransport{})
	if err != nil {
		t.Fatalf("connpool.New 失败: %v", err)
	}
	cache, err := respcache.New(respcache.DefaultConfig())
	if err != nil {
		t.Fatalf("respcache.New 失败: %v", err)
	}
	limiter, err := bandwidth.New(bandwidth.DefaultConfig())
	if err != nil {
		t.Fatalf("bandwidth.New 失败: %v", err)
	}

	return NewCollector(sched, pool, cache, limiter)
}

func TestCollector_Registers(t *testing.T) {
	c := newTestCollector(t)

	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("注册采集器失败: %v", err)
	}

	// 3 个 pending 序列 + 8 个单值指标
	if got := testutil.CollectAndCount(c); got != 11 {
		t.Errorf("指标序列数 = %d, want 11", got)
	}
}

func TestCollector_ReflectsComponentState(t *testing.T) {
	sched, _ := scheduler.New(scheduler.Config{MaxConcurrent: 2})
	pool, _ := connpool.New(connpool.DefaultConfig(), nopTransport{})
	cache, _ := respcache.New(respcache.DefaultConfig())
	limiter, _ := bandwidth.New(bandwidth.DefaultConfig())
	c := NewCollector(sched, pool, cache, limiter)

	sched.Schedule(&types.Request{Method: "GET", URL: "https://example.com/a"}, types.PriorityHigh)
	_, _ = limiter.ThrottleDownload(context.Background(), 1234)

	reg := prometheus.NewRegistry()
	reg.MustRegister(c)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather 失败: %v", err)
	}

	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += "/" + lp.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				values[name] = g.GetValue()
			}
			if ctr := m.GetCounter(); ctr != nil {
				values[name] = ctr.GetValue()
			}
		}
	}

	if got := values["netstack_scheduler_pending_requests/high"]; got != 1 {
		t.Errorf("高优先级等待数 = %v, want 1", got)
	}
	if got := values["netstack_scheduler_max_concurrent"]; got != 2 {
		t.Errorf("并发上限 = %v, want 2", got)
	}
	if got := values["netstack_bandwidth_bytes_received_total"]; got != 1234 {
		t.Errorf("接收字节数 = %v, want 1234", got)
	}
}
