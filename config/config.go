// Package config 提供 go-netstack 的统一配置管理
//
// 所有配置项都是纯数值/布尔旋钮，没有文件格式约定；
// JSON 标签只为调试输出与测试固件服务。
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 配置无效
var ErrInvalidConfig = errors.New("config: invalid config")

// Config go-netstack 总配置
//
// 四个核心组件各占一节，互不影响。
type Config struct {
	// Scheduler 请求调度器配置
	Scheduler SchedulerConfig `json:"scheduler"`

	// Pool 连接池配置
	Pool PoolConfig `json:"pool"`

	// Cache 响应缓存配置
	Cache CacheConfig `json:"cache"`

	// Bandwidth 带宽限速器配置
	Bandwidth BandwidthConfig `json:"bandwidth"`

	// EnableMetrics 是否注册 Prometheus 指标采集器
	// 默认值: false
	EnableMetrics bool `json:"enable_metrics"`
}

// NewConfig 返回默认配置
func NewConfig() *Config {
	return &Config{
		Scheduler: DefaultSchedulerConfig(),
		Pool:      DefaultPoolConfig(),
		Cache:     DefaultCacheConfig(),
		Bandwidth: DefaultBandwidthConfig(),
	}
}

// Validate 验证整体配置
//
// 逐节验证，任一节无效即失败，错误中带上节名。
func (c *Config) Validate() error {
	if err := c.Scheduler.Validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	if err := c.Pool.Validate(); err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Bandwidth.Validate(); err != nil {
		return fmt.Errorf("bandwidth: %w", err)
	}
	return nil
}
