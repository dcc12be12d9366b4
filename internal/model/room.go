package model

import (
	"gorm.io/gorm"
)

// Room 房间模型
// 对应数据库 room 表
// 房间人数不在此冗余存储，实时人数一律通过 room_participant 表 COUNT 得出，
// 避免计数器与成员集合在并发更新下不一致
type Room struct {
	gorm.Model
	Uuid            string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:房间唯一id"`
	Name            string `gorm:"column:name;type:varchar(50);not null;comment:房间名称"`
	Type            string `gorm:"column:type;type:char(10);not null;comment:房间类型，music/watch/hangout"`
	CreatorId       string `gorm:"column:creator_id;index;type:char(20);not null;comment:创建者uuid"`
	RoomCode        string `gorm:"column:room_code;uniqueIndex;type:char(10);not null;comment:房间码，统一大写存储"`
	IsPrivate       bool   `gorm:"column:is_private;default:false;not null;comment:是否私密，私密房不进公开列表"`
	MaxParticipants int    `gorm:"column:max_participants;default:20;not null;comment:人数上限"`
	Status          int8   `gorm:"column:status;default:0;comment:状态，0.正常，1.解散"`
}

func (Room) TableName() string {
	return "room"
}
