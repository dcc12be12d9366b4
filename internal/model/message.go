// Package model 定义数据库实体模型
// 本文件定义消息模型，存储房间内的聊天消息
package model

import (
	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表，追加写入，创建后不再修改
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 使用雪花算法生成的 int64，同一节点内单调递增
	// created_at 相同时按 uuid 排序，保证所有订阅者观察到同一房间内消息的相对顺序一致
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// RoomUuid 消息所属房间
	RoomUuid string `gorm:"column:room_uuid;index;type:char(20);not null;comment:房间uuid"`

	// Type 消息类型
	// 0=文本, 1=图片, 2=语音，参见 pkg/enum/message/message_type_enum
	Type int8 `gorm:"column:type;not null;comment:消息类型，0.文本，1.图片，2.语音"`

	// Content 消息文本内容
	Content string `gorm:"column:content;type:TEXT;comment:消息内容"`

	// Url 资源 URL
	// 图片、语音等多媒体消息存对象存储的访问链接
	Url string `gorm:"column:url;type:varchar(255);comment:资源url"`

	// SendId 发送者 UUID
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// SendName 发送者昵称
	// 冗余存储，避免每次查询消息时都要关联用户表
	SendName string `gorm:"column:send_name;type:varchar(30);not null;comment:发送者昵称"`

	// SendAvatar 发送者头像
	// 冗余存储
	SendAvatar string `gorm:"column:send_avatar;type:varchar(255);comment:发送者头像"`

	// Status 消息状态
	// 0=未发送, 1=已发送
	Status int8 `gorm:"column:status;not null;comment:状态，0.未发送，1.已发送"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
