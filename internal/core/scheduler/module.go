package scheduler

import (
	"go.uber.org/fx"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Config 配置（可选）
	Config *Config `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// Scheduler 请求调度器
	Scheduler *Scheduler
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	// 使用默认配置或输入配置
	cfg := DefaultConfig()
	if input.Config != nil {
		cfg = *input.Config
	}

	sched, err := New(cfg)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		Scheduler: sched,
	}, nil
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("scheduler",
		fx.Provide(ProvideServices),
	)
}

// ============================================================================
//                              模块元信息
// ============================================================================

// 模块元信息常量
const (
	Version     = "1.0.0"
	Name        = "scheduler"
	Description = "请求调度模块，提供优先级准入控制与并发预算"
)
