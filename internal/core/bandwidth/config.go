package bandwidth

import (
	"errors"
	"time"

	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
)

// 带宽限速器错误定义
var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("bandwidth: invalid config")

	// ErrUnknownCondition 未知的网络条件名称
	ErrUnknownCondition = errors.New("bandwidth: unknown network condition")
)

// Config 带宽限速器配置
type Config struct {
	// DownloadLimitBps 下行限速（字节/秒），0 为离线，负值不限速
	//
	// 默认值: NoLimit
	DownloadLimitBps int64

	// UploadLimitBps 上行限速（字节/秒），0 为离线，负值不限速
	//
	// 默认值: NoLimit
	UploadLimitBps int64

	// Latency 每次收发附加的延迟
	//
	// 默认值: 0
	Latency time.Duration

	// Condition 预置网络条件名称，非空时覆盖上面三项
	Condition string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		DownloadLimitBps: pkgif.NoLimit,
		UploadLimitBps:   pkgif.NoLimit,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Latency < 0 {
		return ErrInvalidConfig
	}
	if c.Condition != "" {
		if _, err := ConditionByName(c.Condition); err != nil {
			return err
		}
	}
	return nil
}
