package config

// BandwidthConfig 带宽限速器配置
//
// 上下行上限使用 int64 三态约定：负值不限速、0 离线仿真、
// 正值为字节/秒上限。Condition 非空时覆盖三个数值字段，
// 取对应预设档位（offline / slow-2g / 2g / 3g / 4g / wifi）。
type BandwidthConfig struct {
	// DownloadLimitBps 下行上限（字节/秒）
	// 默认值: -1（不限速）
	DownloadLimitBps int64 `json:"download_limit_bps"`

	// UploadLimitBps 上行上限（字节/秒）
	// 默认值: -1（不限速）
	UploadLimitBps int64 `json:"upload_limit_bps"`

	// Latency 附加延迟
	// 默认值: 0
	Latency Duration `json:"latency"`

	// Condition 命名网络条件预设（可选，覆盖上面三项）
	Condition string `json:"condition,omitempty"`
}

// DefaultBandwidthConfig 返回默认的带宽配置（不限速）
func DefaultBandwidthConfig() BandwidthConfig {
	return BandwidthConfig{
		DownloadLimitBps: -1,
		UploadLimitBps:   -1,
		Latency:          0,
	}
}

// Validate 验证带宽配置
func (c *BandwidthConfig) Validate() error {
	if c.Latency < 0 {
		return ErrInvalidConfig
	}
	return nil
}
