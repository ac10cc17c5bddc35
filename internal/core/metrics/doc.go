// Package metrics 暴露网络栈各组件的 Prometheus 指标
//
// 核心功能：
//   - 采集时实时拉取调度器、连接池、缓存与带宽限速器的统计快照
//   - 指标均为 Gauge/Counter 语义的即时值，无内部状态
//
// 快速开始：
//
//	collector := metrics.NewCollector(sched, pool, cache, limiter)
//	prometheus.MustRegister(collector)
package metrics
