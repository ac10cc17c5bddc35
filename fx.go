package netstack

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-netstack/config"
	"github.com/dep2p/go-netstack/internal/core/bandwidth"
	"github.com/dep2p/go-netstack/internal/core/connpool"
	"github.com/dep2p/go-netstack/internal/core/metrics"
	"github.com/dep2p/go-netstack/internal/core/respcache"
	"github.com/dep2p/go-netstack/internal/core/scheduler"
	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 组装所有内部模块：
//   - 核心模块：调度器、连接池、缓存、带宽限速器（必须加载）
//   - 条件模块：指标采集器（EnableMetrics 时加载）
//   - 扩展模块：用户自定义 Fx 选项
func buildFxApp(o *options, stack *Stack) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 前置校验
	// ════════════════════════════════════════════════════════════════════════
	if o.transport == nil {
		return nil, ErrNilTransport
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 核心模块（必须加载）
	// ════════════════════════════════════════════════════════════════════════
	modules := []fx.Option{
		// 依赖注入
		fx.Provide(func() pkgif.Transport { return o.transport }),
		fx.Provide(provideSchedulerConfig(o.cfg)),
		fx.Provide(providePoolConfig(o.cfg)),
		fx.Provide(provideCacheConfig(o.cfg)),
		fx.Provide(provideBandwidthConfig(o.cfg)),

		// 资源管理组件
		scheduler.Module(),
		connpool.Module(),
		respcache.Module(),
		bandwidth.Module(),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 指标模块（条件加载）
	// ════════════════════════════════════════════════════════════════════════
	if o.cfg.EnableMetrics {
		modules = append(modules, metrics.Module())
	}

	// ════════════════════════════════════════════════════════════════════════
	// 4. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 5. Stack 组件注入
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, fx.Invoke(injectStackComponents(stack, o.transport)))

	// ════════════════════════════════════════════════════════════════════════
	// 6. Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
		fx.NopLogger,
	)

	return fx.New(modules...), nil
}

// ════════════════════════════════════════════════════════════════════════════
// 组件注入辅助函数
// ════════════════════════════════════════════════════════════════════════════

// stackInjectParams Stack 组件注入参数
type stackInjectParams struct {
	fx.In

	// 核心组件（必需）
	Scheduler *scheduler.Scheduler
	Pool      *connpool.Pool
	Cache     *respcache.Cache
	Limiter   *bandwidth.Limiter

	// 可选组件
	Collector *metrics.Collector `optional:"true"`
}

// injectStackComponents 创建 Stack 组件注入函数
func injectStackComponents(stack *Stack, transport pkgif.Transport) interface{} {
	return func(params stackInjectParams) {
		stack.scheduler = params.Scheduler
		stack.pool = params.Pool
		stack.cache = params.Cache
		stack.limiter = params.Limiter
		stack.collector = params.Collector
		stack.transport = transport
	}
}

// ════════════════════════════════════════════════════════════════════════════
// 配置转换函数
// ════════════════════════════════════════════════════════════════════════════

// provideSchedulerConfig 提供调度器配置
func provideSchedulerConfig(cfg *config.Config) func() *scheduler.Config {
	return func() *scheduler.Config {
		return &scheduler.Config{
			MaxConcurrent: cfg.Scheduler.MaxConcurrent,
		}
	}
}

// providePoolConfig 提供连接池配置
func providePoolConfig(cfg *config.Config) func() *connpool.Config {
	return func() *connpool.Config {
		return &connpool.Config{
			PoolSize:        cfg.Pool.PoolSize,
			IdleTimeout:     cfg.Pool.IdleTimeout.Std(),
			MaxConnsPerHost: cfg.Pool.MaxConnsPerHost,
			EnableKeepAlive: cfg.Pool.EnableKeepAlive,
		}
	}
}

// provideCacheConfig 提供响应缓存配置
func provideCacheConfig(cfg *config.Config) func() *respcache.Config {
	return func() *respcache.Config {
		return &respcache.Config{
			Enabled:       cfg.Cache.Enabled,
			MaxSizeBytes:  cfg.Cache.MaxSizeBytes,
			MaxAgeSeconds: cfg.Cache.MaxAgeSeconds,
		}
	}
}

// provideBandwidthConfig 提供带宽限速配置
func provideBandwidthConfig(cfg *config.Config) func() *bandwidth.Config {
	return func() *bandwidth.Config {
		return &bandwidth.Config{
			DownloadLimitBps: cfg.Bandwidth.DownloadLimitBps,
			UploadLimitBps:   cfg.Bandwidth.UploadLimitBps,
			Latency:          cfg.Bandwidth.Latency.Std(),
			Condition:        cfg.Bandwidth.Condition,
		}
	}
}
