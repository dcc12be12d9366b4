package model

import "time"

// RoomParticipant 房间成员关联表
// (room_uuid, user_uuid) 上的唯一索引保证同一用户在同一房间至多一条记录，
// 并发重复加入（如双击）由该约束兜底
type RoomParticipant struct {
	ID        uint      `gorm:"primarykey"`
	RoomUuid  string    `gorm:"column:room_uuid;uniqueIndex:uk_room_user;type:char(20);not null;comment:房间uuid"`
	UserUuid  string    `gorm:"column:user_uuid;uniqueIndex:uk_room_user;index;type:char(20);not null;comment:用户uuid"`
	JoinedAt  time.Time `gorm:"column:joined_at;type:datetime;not null;comment:加入时间"`
}

func (RoomParticipant) TableName() string {
	return "room_participant"
}
