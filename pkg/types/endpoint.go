package types

import (
	"fmt"
	"strings"
)

// Endpoint 连接目标端点
//
// 连接池按 Endpoint 分组复用连接：
// 同一 (scheme, host, port) 的请求可以共享池化连接，
// 不同端点之间永不共享。
//
// Endpoint 是可比较类型，可直接作为 map 键。
type Endpoint struct {
	// Scheme 协议方案（http / https / ws ...）
	Scheme string

	// Host 主机名
	Host string

	// Port 端口号
	Port uint16
}

// String 返回 "scheme://host:port" 形式的端点描述
func (e Endpoint) String() string {
	return fmt.Sprintf("%s://%s:%d", e.Scheme, e.Host, e.Port)
}

// Validate 检查端点是否完整
func (e Endpoint) Validate() error {
	if strings.TrimSpace(e.Host) == "" {
		return fmt.Errorf("endpoint: empty host")
	}
	if e.Port == 0 {
		return fmt.Errorf("endpoint: zero port")
	}
	return nil
}
