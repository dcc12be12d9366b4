// Package room_status_enum 定义房间状态枚举
package room_status_enum

const (
	NORMAL    int8 = 0 // 正常
	DISMISSED int8 = 1 // 已解散
)
