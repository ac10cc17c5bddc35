package bandwidth

import (
	"strings"
	"time"
)

// Condition 网络条件，描述一组上下行限速与延迟
type Condition struct {
	// Name 条件名称
	Name string

	// DownloadBytesPerSec 下行限速（字节/秒），0 表示离线
	DownloadBytesPerSec int64

	// UploadBytesPerSec 上行限速（字节/秒），0 表示离线
	UploadBytesPerSec int64

	// Latency 附加延迟
	Latency time.Duration
}

// ============================================================================
//                              预置条件
// ============================================================================

// 预置网络条件
var (
	// ConditionOffline 离线，无连通性
	ConditionOffline = Condition{Name: "offline"}

	// ConditionSlow2G 慢速 2G：50 Kbps，2000ms 延迟
	ConditionSlow2G = Condition{
		Name:                "slow-2g",
		DownloadBytesPerSec: kbpsToBytesPerSec(50),
		UploadBytesPerSec:   kbpsToBytesPerSec(50),
		Latency:             2000 * time.Millisecond,
	}

	// Condition2G 2G：250 Kbps，800ms 延迟
	Condition2G = Condition{
		Name:                "2g",
		DownloadBytesPerSec: kbpsToBytesPerSec(250),
		UploadBytesPerSec:   kbpsToBytesPerSec(250),
		Latency:             800 * time.Millisecond,
	}

	// Condition3G 3G：750 Kbps，200ms 延迟
	Condition3G = Condition{
		Name:                "3g",
		DownloadBytesPerSec: kbpsToBytesPerSec(750),
		UploadBytesPerSec:   kbpsToBytesPerSec(750),
		Latency:             200 * time.Millisecond,
	}

	// Condition4G 4G：4 Mbps，50ms 延迟
	Condition4G = Condition{
		Name:                "4g",
		DownloadBytesPerSec: kbpsToBytesPerSec(4000),
		UploadBytesPerSec:   kbpsToBytesPerSec(4000),
		Latency:             50 * time.Millisecond,
	}

	// ConditionWiFi WiFi：30 Mbps，10ms 延迟
	ConditionWiFi = Condition{
		Name:                "wifi",
		DownloadBytesPerSec: kbpsToBytesPerSec(30000),
		UploadBytesPerSec:   kbpsToBytesPerSec(30000),
		Latency:             10 * time.Millisecond,
	}
)

// CustomCondition 构造自定义网络条件
func CustomCondition(downloadKbps, uploadKbps uint32, latency time.Duration) Condition {
	return Condition{
		Name:                "custom",
		DownloadBytesPerSec: kbpsToBytesPerSec(downloadKbps),
		UploadBytesPerSec:   kbpsToBytesPerSec(uploadKbps),
		Latency:             latency,
	}
}

// ConditionByName 按名称查找预置条件（大小写不敏感）
func ConditionByName(name string) (Condition, error) {
	switch strings.ToLower(name) {
	case "offline":
		return ConditionOffline, nil
	case "slow-2g", "slow2g":
		return ConditionSlow2G, nil
	case "2g":
		return Condition2G, nil
	case "3g":
		return Condition3G, nil
	case "4g":
		return Condition4G, nil
	case "wifi":
		return ConditionWiFi, nil
	default:
		return Condition{}, ErrUnknownCondition
	}
}

// kbpsToBytesPerSec 千比特每秒换算为字节每秒
//
// 1 Kbps = 1000 bit/s = 125 B/s
func kbpsToBytesPerSec(kbps uint32) int64 {
	return int64(kbps) * 1000 / 8
}
