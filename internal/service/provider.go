// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"echoverse_server/internal/dao/mysql/repository"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/internal/service/activity"
	"echoverse_server/internal/service/friend"
	"echoverse_server/internal/service/message"
	"echoverse_server/internal/service/room"
	"echoverse_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	User     UserService     // 用户 Service
	Room     RoomService     // 房间 Service
	Activity ActivityService // 共享活动 Service
	Message  MessageService  // 消息 Service
	Friend   FriendService   // 好友 Service
}

// NewServices 创建并注入所有 Service 实例
// repos: Repository 层聚合实例
// cache: 缓存服务实例
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService) *Services {
	userSvc := user.NewUserService(repos, cache)
	roomSvc := room.NewRoomService(repos, cache)
	activitySvc := activity.NewActivityService(repos)
	messageSvc := message.NewMessageService(repos, cache)
	friendSvc := friend.NewFriendService(repos, cache)

	return &Services{
		User:     userSvc,
		Room:     roomSvc,
		Activity: activitySvc,
		Message:  messageSvc,
		Friend:   friendSvc,
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.Room.CreateRoom() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository 和 Redis 初始化之后
func InitServices(repos *repository.Repositories, cache myredis.AsyncCacheService) {
	Svc = NewServices(repos, cache)
}
