package model

import (
	"gorm.io/gorm"
)

// FriendLink 好友关系有向边
// 互为好友用两条 ACCEPTED 边表示（每个方向一条），通过申请时在同一事务内一起写入，
// 避免出现只有单向好友的脏状态
type FriendLink struct {
	gorm.Model
	Uuid     string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:边唯一id"`
	UserId   string `gorm:"column:user_id;index;type:char(20);not null;comment:发起方uuid"`
	FriendId string `gorm:"column:friend_id;index;type:char(20);not null;comment:对方uuid"`
	Status   int8   `gorm:"column:status;not null;comment:状态，0.申请中，1.已通过"`
	Message  string `gorm:"column:message;type:varchar(100);comment:申请附言"`
}

func (FriendLink) TableName() string {
	return "friend_link"
}
