// Package message_status_enum 定义消息投递状态枚举
package message_status_enum

const (
	Unsent int8 = 0 // 未发送
	Sent   int8 = 1 // 已发送
)
