// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理用户注册、登录、资料管理和在线状态
type UserService interface {
	// Register 用户注册，成功后直接下发令牌
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 用 Refresh Token 换新令牌
	RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error)
	// GetUserInfo 获取个人主页信息，含实时统计
	GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error)
	// UpdateUserInfo 更新个人资料
	UpdateUserInfo(uuid string, req request.UpdateUserInfoRequest) error
	// SetStatus 设置在线状态，写 Redis 并异步落库
	SetStatus(uuid string, status string) error
}

// RoomService 房间业务接口
// 处理房间的创建、发现、加入、离开和解散
type RoomService interface {
	// CreateRoom 创建房间，创建者自动入房并初始化活动状态
	CreateRoom(creatorId string, req request.CreateRoomRequest) (*respond.RoomInfoRespond, error)
	// ListPublicRooms 公开房间列表，按创建时间倒序，含实时人数
	ListPublicRooms() ([]respond.RoomInfoRespond, error)
	// GetRoomInfo 获取单个房间信息
	GetRoomInfo(roomUuid string) (*respond.RoomInfoRespond, error)
	// JoinRoom 加入房间，幂等，满员报错
	JoinRoom(userUuid, roomUuid string) (*respond.RoomInfoRespond, error)
	// JoinByCode 通过房间码加入，房间码大小写不敏感
	JoinByCode(userUuid, roomCode string) (*respond.RoomInfoRespond, error)
	// LeaveRoom 离开房间，幂等
	LeaveRoom(userUuid, roomUuid string) error
	// DismissRoom 解散房间，仅房主可操作，级联清理成员/消息/活动状态
	DismissRoom(ownerUuid, roomUuid string) error
	// GetParticipants 获取房间成员列表
	GetParticipants(roomUuid string) ([]respond.ParticipantRespond, error)
}

// ActivityService 共享活动业务接口
// 维护房间内音乐/视频播放的共享状态机
type ActivityService interface {
	// GetState 获取房间当前活动状态
	GetState(roomUuid string) (*respond.ActivityStateRespond, error)
	// SelectItem 选定播放条目，进入 Loaded 状态
	SelectItem(userUuid string, req request.ActivitySelectRequest) (*respond.ActivityStateRespond, error)
	// Play 开始或恢复播放
	Play(userUuid string, req request.ActivityPlayRequest) (*respond.ActivityStateRespond, error)
	// Pause 暂停播放
	Pause(userUuid string, req request.ActivityPauseRequest) (*respond.ActivityStateRespond, error)
	// Seek 跳转进度，播放/暂停状态均可
	Seek(userUuid string, req request.ActivitySeekRequest) (*respond.ActivityStateRespond, error)
}

// MessageService 消息业务接口
// 处理历史消息查询
type MessageService interface {
	// GetHistory 分页获取房间历史消息，最新在前
	GetHistory(userUuid string, req request.MessageHistoryRequest) ([]respond.MessageRespond, error)
}

// FriendService 好友业务接口
// 处理好友申请、接受、拒绝和列表
type FriendService interface {
	// SendRequest 发起好友申请
	SendRequest(userUuid string, req request.ApplyFriendRequest) error
	// AcceptRequest 接受好友申请，双向边在同一事务内写入
	AcceptRequest(userUuid, requestUuid string) error
	// DeclineRequest 拒绝好友申请
	DeclineRequest(userUuid, requestUuid string) error
	// ListFriends 好友列表，含 Redis 实时在线状态
	ListFriends(userUuid string) ([]respond.FriendRespond, error)
	// ListPendingRequests 发给我的待处理申请列表
	ListPendingRequests(userUuid string) ([]respond.FriendRequestRespond, error)
}
