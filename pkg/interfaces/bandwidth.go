package interfaces

import (
	"context"
	"time"
)

// NoLimit 表示不限速
//
// 带宽上限使用 int64 表达三种状态：
//   - 负值: 不限速（NoLimit）
//   - 0:    离线仿真（产生近乎无限的延迟）
//   - 正值: 字节/秒上限
const NoLimit int64 = -1

// BandwidthLimiter 带宽限速器
//
// 对上下行分别做基于预约的速率整形，并注入人工延迟。
// Throttle* 是流水线的限速挂起点：预约槽位在内部锁内提交，
// 实际睡眠在锁外进行，因此并发调用方只在计算/预约槽位时串行，
// 而不是在整个延迟期间互相阻塞——这正是它在并发下仍是
// 聚合吞吐限速器而非单调用方延迟器的原因。
//
// 限速器的任何操作自身都不会失败；Throttle* 返回的唯一非 nil
// 错误是调用方自己的 ctx 取消。
type BandwidthLimiter interface {
	// SetDownloadLimit 设置下行限速（字节/秒，见 NoLimit 约定）
	SetDownloadLimit(bytesPerSec int64)

	// SetUploadLimit 设置上行限速（字节/秒，见 NoLimit 约定）
	SetUploadLimit(bytesPerSec int64)

	// SetLatency 设置附加延迟
	SetLatency(latency time.Duration)

	// ThrottleDownload 对 n 字节的下行传输限速
	//
	// 返回实际施加的延迟（带宽延迟 + 附加延迟）。
	// 零字节传输恒定返回零延迟且不触碰任何计数器。
	ThrottleDownload(ctx context.Context, n uint64) (time.Duration, error)

	// ThrottleUpload 对 n 字节的上行传输限速
	ThrottleUpload(ctx context.Context, n uint64) (time.Duration, error)

	// Stats 返回统计快照
	Stats() BandwidthStats

	// ResetStats 重置流量统计与预约槽位
	ResetStats()
}

// BandwidthStats 带宽统计快照
type BandwidthStats struct {
	// DownloadLimit 当前下行上限（字节/秒，负值 = 不限速）
	DownloadLimit int64

	// UploadLimit 当前上行上限（字节/秒，负值 = 不限速）
	UploadLimit int64

	// AddedLatency 当前附加延迟
	AddedLatency time.Duration

	// BytesSent 累计发送字节数（上行）
	BytesSent uint64

	// BytesReceived 累计接收字节数（下行）
	BytesReceived uint64

	// Elapsed 自统计开始以来的时长
	Elapsed time.Duration
}
