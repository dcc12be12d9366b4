package model

import (
	"time"

	"gorm.io/gorm"
)

// ActivityState 房间共享活动状态
// 每个房间恰好一行，随房间创建，随房间解散删除
// 冲突策略为 last-write-wins：以 UpdatedBy/UpdatedAt 记录最后一次写入者和服务端时间，
// 客户端收到重复广播时按 UpdatedAt 取最新，不做分布式共识
type ActivityState struct {
	gorm.Model
	RoomUuid string `gorm:"column:room_uuid;uniqueIndex;type:char(20);not null;comment:房间uuid"`

	// State 状态机当前状态，见 activity_state_enum
	State int8 `gorm:"column:state;not null;default:0;comment:状态，0.Idle，1.Loaded，2.Playing，3.Paused"`

	// ItemRef 当前条目引用（歌曲/视频的外部标识），Idle 时为空
	ItemRef string `gorm:"column:item_ref;type:varchar(255);comment:当前条目引用"`

	// PositionMs 播放位置（毫秒）
	// Playing 状态下是 Since 时刻的位置快照，客户端用墙钟时间差本地插值
	PositionMs int64 `gorm:"column:position_ms;not null;default:0;comment:播放位置毫秒"`

	// IsPlaying 是否在播放
	IsPlaying bool `gorm:"column:is_playing;not null;default:false;comment:是否播放中"`

	// UpdatedBy 最后一次操作的用户
	UpdatedBy string `gorm:"column:updated_by;type:char(20);comment:最后操作者uuid"`

	// Since 最后一次状态写入的服务端时间，last-write-wins 的比较基准
	Since time.Time `gorm:"column:since;type:datetime;not null;comment:状态生效时间"`
}

func (ActivityState) TableName() string {
	return "activity_state"
}
