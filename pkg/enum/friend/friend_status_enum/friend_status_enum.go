// Package friend_status_enum 定义好友关系状态枚举
package friend_status_enum

const (
	PENDING  int8 = 0 // 申请中
	ACCEPTED int8 = 1 // 已通过
)
