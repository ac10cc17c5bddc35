// Package types 定义 go-netstack 的公共值类型
//
// 本包只包含纯数据类型，不依赖任何内部实现包，
// 供 pkg/interfaces 与 internal/core 共同使用。
package types

import "fmt"

// RequestID 请求标识符
//
// 由调度器单调递增分配，进程生命周期内永不复用。
// 一个 RequestID 标识请求从排队到完成/取消的整个生命周期。
type RequestID uint64

// Priority 请求优先级
type Priority int

// 优先级常量（数值越小优先级越高）
const (
	// PriorityHigh 高优先级（导航、CSS、字体）
	PriorityHigh Priority = iota

	// PriorityMedium 中优先级（脚本、XHR）
	PriorityMedium

	// PriorityLow 低优先级（图片、预取）
	PriorityLow
)

// String 返回优先级的可读名称
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Valid 检查优先级是否为已知取值
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

// Request 出站请求
//
// 核心只关心其中四项信息：URL、方法、字节长度、目标端点；
// 其余内容对核心透明，由外部传输层解释。
type Request struct {
	// Method HTTP 方法（GET / POST / ...）
	Method string

	// URL 规范化后的请求 URL
	URL string

	// Endpoint 目标端点（host/port/scheme）
	Endpoint Endpoint

	// Header 请求头（核心不解释，透传给传输层）
	Header map[string]string

	// Body 请求体（用于上行计量）
	Body []byte
}

// BodySize 返回请求体字节数
func (r *Request) BodySize() uint64 {
	return uint64(len(r.Body))
}

// Clone 返回请求的深拷贝
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	out := &Request{
		Method:   r.Method,
		URL:      r.URL,
		Endpoint: r.Endpoint,
	}
	if r.Header != nil {
		out.Header = make(map[string]string, len(r.Header))
		for k, v := range r.Header {
			out.Header[k] = v
		}
	}
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return out
}

// ScheduledRequest 已出队的请求
//
// NextRequest 的返回值：请求本体加上其调度标识，
// 调用方必须用该 ID 调用 Complete 或 CancelRequest 释放并发槽位。
type ScheduledRequest struct {
	ID      RequestID
	Request *Request
}
