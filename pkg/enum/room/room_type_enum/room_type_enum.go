// Package room_type_enum 定义房间类型枚举
package room_type_enum

// 房间类型，与前端保持一致使用字符串
const (
	MUSIC   = "music"   // 一起听歌
	WATCH   = "watch"   // 一起看视频
	HANGOUT = "hangout" // 闲聊房
)

// Valid 检查房间类型是否合法
func Valid(t string) bool {
	return t == MUSIC || t == WATCH || t == HANGOUT
}
