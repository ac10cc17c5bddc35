package respcache

import "github.com/dep2p/go-netstack/pkg/types"

// cacheKey 缓存键，方法与 URL 的组合
type cacheKey struct {
	method string
	url    string
}

// makeKey 由请求构造缓存键
func makeKey(req *types.Request) cacheKey {
	return cacheKey{method: req.Method, url: req.URL}
}
