package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
)

// 指标命名空间
const namespace = "netstack"

// Collector 网络栈指标采集器
//
// 实现 prometheus.Collector 接口，采集时实时读取各组件统计，
// 自身不持有任何计数状态。
type Collector struct {
	scheduler pkgif.RequestScheduler
	pool      pkgif.ConnectionPool
	cache     pkgif.ResponseCache
	limiter   pkgif.BandwidthLimiter

	pendingDesc       *prometheus.Desc
	activeDesc        *prometheus.Desc
	maxConcurrentDesc *prometheus.Desc
	poolIdleDesc      *prometheus.Desc
	poolActiveDesc    *prometheus.Desc
	cacheSizeDesc     *prometheus.Desc
	cacheEntriesDesc  *prometheus.Desc
	bytesSentDesc     *prometheus.Desc
	bytesRecvDesc     *prometheus.Desc
}

// 确保实现接口
var _ prometheus.Collector = (*Collector)(nil)

// NewCollector 创建指标采集器
func NewCollector(
	scheduler pkgif.RequestScheduler,
	pool pkgif.ConnectionPool,
	cache pkgif.ResponseCache,
	limiter pkgif.BandwidthLimiter,
) *Collector {
	return &Collector{
		scheduler: scheduler,
		pool:      pool,
		cache:     cache,
		limiter:   limiter,

		pendingDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "scheduler", "pending_requests"),
			"等待队列中的请求数",
			[]string{"priority"}, nil,
		),
		activeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "scheduler", "active_requests"),
			"活跃请求数",
			nil, nil,
		),
		maxConcurrentDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "scheduler", "max_concurrent"),
			"并发请求上限",
			nil, nil,
		),
		poolIdleDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pool", "idle_connections"),
			"空闲连接数",
			nil, nil,
		),
		poolActiveDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pool", "active_connections"),
			"活跃连接数",
			nil, nil,
		),
		cacheSizeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "size_bytes"),
			"缓存占用字节数",
			nil, nil,
		),
		cacheEntriesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "entries"),
			"缓存条目数",
			nil, nil,
		),
		bytesSentDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "bandwidth", "bytes_sent_total"),
			"累计发送字节数",
			nil, nil,
		),
		bytesRecvDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "bandwidth", "bytes_received_total"),
			"累计接收字节数",
			nil, nil,
		),
	}
}

// Describe 实现 prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pendingDesc
	ch <- c.activeDesc
	ch <- c.maxConcurrentDesc
	ch <- c.poolIdleDesc
	ch <- c.poolActiveDesc
	ch <- c.cacheSizeDesc
	ch <- c.cacheEntriesDesc
	ch <- c.bytesSentDesc
	ch <- c.bytesRecvDesc
}

// Collect 实现 prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ss := c.scheduler.Stats()
	ch <- prometheus.MustNewConstMetric(c.pendingDesc, prometheus.GaugeValue, float64(ss.PendingHigh), "high")
	ch <- prometheus.MustNewConstMetric(c.pendingDesc, prometheus.GaugeValue, float64(ss.PendingMedium), "medium")
	ch <- prometheus.MustNewConstMetric(c.pendingDesc, prometheus.GaugeValue, float64(ss.PendingLow), "low")
	ch <- prometheus.MustNewConstMetric(c.activeDesc, prometheus.GaugeValue, float64(ss.Active))
	ch <- prometheus.MustNewConstMetric(c.maxConcurrentDesc, prometheus.GaugeValue, float64(ss.MaxConcurrent))

	ps := c.pool.Stats()
	ch <- prometheus.MustNewConstMetric(c.poolIdleDesc, prometheus.GaugeValue, float64(ps.IdleTotal))
	ch <- prometheus.MustNewConstMetric(c.poolActiveDesc, prometheus.GaugeValue, float64(ps.ActiveTotal))

	ch <- prometheus.MustNewConstMetric(c.cacheSizeDesc, prometheus.GaugeValue, float64(c.cache.CurrentSize()))
	ch <- prometheus.MustNewConstMetric(c.cacheEntriesDesc, prometheus.GaugeValue, float64(c.cache.EntryCount()))

	bs := c.limiter.Stats()
	ch <- prometheus.MustNewConstMetric(c.bytesSentDesc, prometheus.CounterValue, float64(bs.BytesSent))
	ch <- prometheus.MustNewConstMetric(c.bytesRecvDesc, prometheus.CounterValue, float64(bs.BytesReceived))
}
