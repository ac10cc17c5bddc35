package respcache

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

	// Cache 响应缓存
	Cache *Cache
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

	cache, err := New(cfg)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		Cache: cache,
	}, nil
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("respcache",
		fx.Provide(ProvideServices),
	)
}

// ============================================================================
//                              模块元信息
// ============================================================================

// 模块元信息常量
const (
	Version     = "1.0.0"
	Name        = "respcache"
	Description = "响应缓存模块，提供 TTL 与 LRU 双重淘汰的有界缓存"
)
