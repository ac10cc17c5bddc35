package types

// Response 入站响应
//
// 核心只读取状态码与字节长度；响应头与响应体对核心透明。
type Response struct {
	// Status HTTP 状态码
	Status int

	// StatusText 状态描述
	StatusText string

	// Header 响应头
	Header map[string]string

	// Body 响应体（用于下行计量与缓存体积估算）
	Body []byte

	// URL 最终 URL（重定向后）
	URL string
}

// BodySize 返回响应体字节数
func (r *Response) BodySize() uint64 {
	return uint64(len(r.Body))
}

// Success 状态码是否为 2xx
func (r *Response) Success() bool {
	return r.Status >= 200 && r.Status < 300
}

// Clone 返回响应的深拷贝
//
// 缓存返回副本而非原件，调用方永远不会共享可变数据。
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	out := &Response{
		Status:     r.Status,
		StatusText: r.StatusText,
		URL:        r.URL,
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
