package connpool

import (
	"context"

	"go.uber.org/fx"

	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Transport 底层传输层
	Transport pkgif.Transport

	// Config 配置（可选）
	Config *Config `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// Pool 连接池
	Pool *Pool
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput, lc fx.Lifecycle) (ModuleOutput, error) {
	// 使用默认配置或输入配置
	cfg := DefaultConfig()
	if input.Config != nil {
		cfg = *input.Config
	}

	pool, err := New(cfg, input.Transport)
	if err != nil {
		return ModuleOutput{}, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return pool.Close()
		},
	})

	return ModuleOutput{
		Pool: pool,
	}, nil
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("connpool",
		fx.Provide(ProvideServices),
	)
}

// ============================================================================
//                              模块元信息
// ============================================================================

// 模块元信息常量
const (
	Version     = "1.0.0"
	Name        = "connpool"
	Description = "连接池模块，提供按端点的连接复用与空闲回收"
)
