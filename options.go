package netstack

import (
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-netstack/config"
	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 基础配置（预设或用户提供）
	cfg *config.Config

	// 传输层（必须）
	transport pkgif.Transport

	// 用户自定义 Fx 选项
	userFxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{
		cfg: config.NewConfig(),
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              基础选项
// ════════════════════════════════════════════════════════════════════════════

// WithTransport 设置底层传输层
//
// 传输层负责实际的拨号与请求收发，是必须提供的依赖。
func WithTransport(t pkgif.Transport) Option {
	return func(o *options) error {
		if t == nil {
			return ErrNilTransport
		}
		o.transport = t
		return nil
	}
}

// WithConfig 使用完整配置替换默认配置
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.cfg = cfg
		return nil
	}
}

// WithPreset 按预设名称加载配置
//
// 支持 "mobile" / "desktop" / "server" / "minimal"，未知名称按 desktop 处理。
func WithPreset(name string) Option {
	return func(o *options) error {
		o.cfg = GetConfigByPreset(name)
		return nil
	}
}

// WithFxOptions 追加用户自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              调度选项
// ════════════════════════════════════════════════════════════════════════════

// WithMaxConcurrent 设置并发请求上限
func WithMaxConcurrent(n int) Option {
	return func(o *options) error {
		o.cfg.Scheduler.MaxConcurrent = n
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              连接池选项
// ════════════════════════════════════════════════════════════════════════════

// WithPoolSize 设置空闲连接保有上限
func WithPoolSize(n int) Option {
	return func(o *options) error {
		o.cfg.Pool.PoolSize = n
		return nil
	}
}

// WithIdleTimeout 设置连接空闲超时
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) error {
		o.cfg.Pool.IdleTimeout = config.Duration(d)
		return nil
	}
}

// WithMaxConnsPerHost 设置每端点并发连接上限
func WithMaxConnsPerHost(n int) Option {
	return func(o *options) error {
		o.cfg.Pool.MaxConnsPerHost = n
		return nil
	}
}

// WithKeepAliveDisabled 关闭连接保活，归还即断开
func WithKeepAliveDisabled() Option {
	return func(o *options) error {
		o.cfg.Pool.EnableKeepAlive = false
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              缓存选项
// ════════════════════════════════════════════════════════════════════════════

// WithCacheDisabled 关闭响应缓存
func WithCacheDisabled() Option {
	return func(o *options) error {
		o.cfg.Cache.Enabled = false
		return nil
	}
}

// WithCacheLimits 设置缓存容量与条目存活时间
func WithCacheLimits(maxSizeBytes uint64, maxAge time.Duration) Option {
	return func(o *options) error {
		o.cfg.Cache.MaxSizeBytes = maxSizeBytes
		o.cfg.Cache.MaxAgeSeconds = uint64(maxAge / time.Second)
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              带宽选项
// ════════════════════════════════════════════════════════════════════════════

// WithBandwidthLimits 设置上下行限速（字节/秒）
//
// 0 表示离线，负值表示不限速。
func WithBandwidthLimits(downloadBps, uploadBps int64) Option {
	return func(o *options) error {
		o.cfg.Bandwidth.DownloadLimitBps = downloadBps
		o.cfg.Bandwidth.UploadLimitBps = uploadBps
		return nil
	}
}

// WithLatency 设置每次收发附加的延迟
func WithLatency(d time.Duration) Option {
	return func(o *options) error {
		o.cfg.Bandwidth.Latency = config.Duration(d)
		return nil
	}
}

// WithNetworkCondition 按名称套用预置网络条件
//
// 支持 "offline" / "slow-2g" / "2g" / "3g" / "4g" / "wifi"。
func WithNetworkCondition(name string) Option {
	return func(o *options) error {
		o.cfg.Bandwidth.Condition = name
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              指标选项
// ════════════════════════════════════════════════════════════════════════════

// WithMetrics 启用 Prometheus 指标采集器
func WithMetrics() Option {
	return func(o *options) error {
		o.cfg.EnableMetrics = true
		return nil
	}
}
