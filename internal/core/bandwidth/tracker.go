package bandwidth

import "time"

// tracker 收发字节统计
//
// 由限速器在持锁状态下读写。
type tracker struct {
	bytesSent     uint64
	bytesReceived uint64
	startedAt     time.Time
}

func newTracker(now time.Time) tracker {
	return tracker{startedAt: now}
}

func (t *tracker) recordUpload(n uint64) {
	t.bytesSent += n
}

func (t *tracker) recordDownload(n uint64) {
	t.bytesReceived += n
}

func (t *tracker) elapsed(now time.Time) time.Duration {
	return now.Sub(t.startedAt)
}

func (t *tracker) reset(now time.Time) {
	t.bytesSent = 0
	t.bytesReceived = 0
	t.startedAt = now
}
