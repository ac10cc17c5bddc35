package metrics

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-netstack/internal/core/bandwidth"
	"github.com/dep2p/go-netstack/internal/core/connpool"
	"github.com/dep2p/go-netstack/internal/core/respcache"
	"github.com/dep2p/go-netstack/internal/core/scheduler"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Scheduler 请求调度器
	Scheduler *scheduler.Scheduler

	// Pool 连接池
	Pool *connpool.Pool

	// Cache 响应缓存
	Cache *respcache.Cache

	// Limiter 带宽限速器
	Limiter *bandwidth.Limiter
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// Collector 指标采集器
	Collector *Collector
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	return ModuleOutput{
		Collector: NewCollector(input.Scheduler, input.Pool, input.Cache, input.Limiter),
	}, nil
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideServices),
	)
}

// ============================================================================
//                              模块元信息
// ============================================================================

// 模块元信息常量
const (
	Version     = "1.0.0"
	Name        = "metrics"
	Description = "指标模块，暴露调度、连接、缓存与带宽的 Prometheus 指标"
)
