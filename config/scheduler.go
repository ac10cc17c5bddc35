package config

// SchedulerConfig 请求调度器配置
type SchedulerConfig struct {
	// MaxConcurrent 并发请求上限
	//
	// NextRequest 在活跃请求数达到该值时返回空。
	// 默认值: 6（浏览器对单主机的传统并发数）
	MaxConcurrent int `json:"max_concurrent"`
}

// DefaultSchedulerConfig 返回默认的调度器配置
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		MaxConcurrent: 6,
	}
}

// Validate 验证调度器配置
func (c *SchedulerConfig) Validate() error {
	if c.MaxConcurrent <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
