// Package presence_enum 定义用户在线状态枚举
package presence_enum

const (
	ONLINE  = "online"  // 在线
	AWAY    = "away"    // 离开
	BUSY    = "busy"    // 忙碌
	OFFLINE = "offline" // 离线
)

// Valid 检查状态值是否合法
func Valid(s string) bool {
	return s == ONLINE || s == AWAY || s == BUSY || s == OFFLINE
}
