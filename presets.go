package netstack

import (
	"github.com/dep2p/go-netstack/config"
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置常量
// ════════════════════════════════════════════════════════════════════════════

// 预设名称常量
const (
	// PresetNameMobile 移动端预设名称
	PresetNameMobile = "mobile"

	// PresetNameDesktop 桌面端预设名称
	PresetNameDesktop = "desktop"

	// PresetNameServer 服务器预设名称
	PresetNameServer = "server"

	// PresetNameMinimal 最小预设名称
	PresetNameMinimal = "minimal"
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置获取
// ════════════════════════════════════════════════════════════════════════════

// GetMobileConfig 获取移动端配置
//
// 适用场景：移动应用、低配设备
// 特点：
//   - 较少的并发请求与连接
//   - 较小的缓存容量
//   - 较短的连接空闲超时
//
// 示例：
//
//	cfg := netstack.GetMobileConfig()
func GetMobileConfig() *config.Config {
	return config.NewMobileConfig()
}

// GetDesktopConfig 获取桌面端配置
//
// 适用场景：桌面应用、个人电脑
// 特点：
//   - 适中的并发与连接池规模
//   - 默认缓存容量
//
// 示例：
//
//	cfg := netstack.GetDesktopConfig()
func GetDesktopConfig() *config.Config {
	return config.NewConfig()
}

// GetServerConfig 获取服务器配置
//
// 适用场景：服务端代理、批量抓取
// 特点：
//   - 大量并发请求与连接
//   - 更大的缓存容量
//
// 示例：
//
//	cfg := netstack.GetServerConfig()
func GetServerConfig() *config.Config {
	return config.NewServerConfig()
}

// GetMinimalConfig 获取最小配置
//
// 适用场景：测试环境、最小化部署
// 特点：
//   - 单并发、无缓存、无保活
//
// 示例：
//
//	cfg := netstack.GetMinimalConfig()
func GetMinimalConfig() *config.Config {
	return config.NewMinimalConfig()
}

// GetConfigByPreset 根据预设名称获取配置
//
// 支持的预设名称：
//   - "mobile"  - 移动端配置
//   - "desktop" - 桌面端配置（默认）
//   - "server"  - 服务器配置
//   - "minimal" - 最小配置
//
// 如果名称未知，返回桌面端配置（默认）。
//
// 示例：
//
//	cfg := netstack.GetConfigByPreset("server")
func GetConfigByPreset(name string) *config.Config {
	switch name {
	case PresetNameMobile:
		return GetMobileConfig()
	case PresetNameDesktop:
		return GetDesktopConfig()
	case PresetNameServer:
		return GetServerConfig()
	case PresetNameMinimal:
		return GetMinimalConfig()
	default:
		return GetDesktopConfig()
	}
}
