// Package activity_state_enum 定义房间共享活动的状态机枚举
// 状态流转: Idle -> Loaded -> Playing <-> Paused -> (选择新条目) -> Loaded
package activity_state_enum

const (
	Idle    int8 = 0 // 未选择任何条目
	Loaded  int8 = 1 // 已选择条目，位置归零，未播放
	Playing int8 = 2 // 播放中
	Paused  int8 = 3 // 已暂停
)
