// Package model 定义数据库实体模型
// 本文件定义用户信息模型，包含用户资料和认证信息
package model

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"echoverse_server/pkg/enum/user/presence_enum"
)

// UserInfo 用户信息模型
// 对应数据库 user_info 表
type UserInfo struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Uuid 用户唯一标识
	// 格式：U + 时间戳随机字符串，如 "U241230aB3dE9x7Kq"
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	// Username 用户名（handle），登录和展示用，全局唯一
	Username string `gorm:"column:username;uniqueIndex;type:varchar(30);not null;comment:用户名"`

	// DisplayName 显示昵称
	DisplayName string `gorm:"column:display_name;type:varchar(30);not null;comment:显示昵称"`

	// Email 邮箱地址
	Email string `gorm:"column:email;index;type:char(50);comment:邮箱"`

	// Avatar 用户头像 URL
	Avatar string `gorm:"column:avatar;type:varchar(255);comment:头像"`

	// Bio 个性签名
	Bio string `gorm:"column:bio;type:varchar(200);comment:个性签名"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// Status 在线状态
	// online / away / busy / offline，见 presence_enum
	// 实时状态以 Redis 为准，此字段保存最近一次落库的状态
	Status string `gorm:"column:status;type:char(10);default:offline;not null;comment:在线状态"`

	// RawPassword 明文密码（不存入数据库）
	// 用于接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段
// 调用方只需设置 RawPassword，无需手动加密
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = "" // 清空明文，防止泄露
	}
	if u.Status == "" {
		u.Status = presence_enum.OFFLINE
	}
	return nil
}

// CheckPassword 校验密码是否正确
// plaintext: 用户输入的明文密码
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
