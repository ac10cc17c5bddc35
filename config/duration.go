package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration time.Duration 的 JSON 友好包装
//
// 序列化为 "90s" / "5m" 这类可读字符串，反序列化同时接受
// 字符串与纳秒数值。
type Duration time.Duration

// Std 转换为标准库 time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String 返回可读形式
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON 实现 json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON 实现 json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("config: invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("config: invalid duration type %T", v)
	}
}
