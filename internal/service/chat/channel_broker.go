// Package chat 实现了实时推送的核心服务层
// channel_broker.go
// 核心职责：单机模式下的事件代理实现
// 1. 维护在线用户连接 (Channel 模式)
// 2. 处理事件的路由扇出
// 3. 管理用户登录/登出事件
// 4. 不依赖外部消息队列，适合小规模或开发环境
package chat

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"echoverse_server/internal/dao/mysql/repository"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/pkg/constants"
)

// StandaloneServer 定义了单机 WebSocket 服务的核心结构
type StandaloneServer struct {
	// Clients 存储所有在线客户端的映射表，Key 为 UserUUID，Value 为 *UserConn
	// 使用 sync.Map 实现并发安全，无需手动加锁
	Clients sync.Map
	// Transmit 事件转发通道，用于处理接收到的广播或路由事件
	Transmit chan []byte
	// Login 客户端登录通道，当有新连接建立时写入此通道
	Login chan *UserConn
	// Logout 客户端登出通道，当连接断开时写入此通道
	Logout chan *UserConn

	dispatcher eventDispatcher
}

// NewStandaloneServer 创建 Channel 模式 Broker 实例（依赖注入）
func NewStandaloneServer(
	messageRepo repository.MessageRepository,
	participantRepo repository.ParticipantRepository,
	userRepo repository.UserRepository,
	cacheService myredis.AsyncCacheService,
) *StandaloneServer {
	return &StandaloneServer{
		// sync.Map 零值即可用，无需显式初始化
		Transmit: make(chan []byte, constants.CHANNEL_SIZE),
		Login:    make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout:   make(chan *UserConn, constants.CHANNEL_SIZE),
		dispatcher: eventDispatcher{
			messageRepo:     messageRepo,
			participantRepo: participantRepo,
			userRepo:        userRepo,
			cacheService:    cacheService,
		},
	}
}

// Start 启动 Channel Server 主循环
// 1. 事件消费循环 (Transmit channel): 接收事件 -> 分发处理
// 2. 客户端管理循环 (Login/Logout channels): 维护 Clients 映射表
func (s *StandaloneServer) Start() {
	for {
		select {
		// 处理客户端登录事件
		case client, ok := <-s.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			s.Clients.Store(client.Uuid, client)
			zap.L().Debug(fmt.Sprintf("用户%s已连接", client.Uuid))

		// 处理客户端登出事件
		// 只处理仍在映射表里的同一连接，重复登出或已被新连接顶替时跳过
		// SendBack 在移除后由本循环关闭，保证不会再向其扇出
		case client, ok := <-s.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			if value, loaded := s.Clients.Load(client.Uuid); loaded && value.(*UserConn) == client {
				s.Clients.Delete(client.Uuid)
				close(client.SendBack)
				zap.L().Info(fmt.Sprintf("用户%s已断开", client.Uuid))
			}

		// 处理事件转发（核心处理循环）
		case data, ok := <-s.Transmit:
			if !ok {
				return
			}
			s.dispatcher.handleEvent(data, &s.Clients)
		}
	}
}

// Close 关闭服务通道
func (s *StandaloneServer) Close() {
	close(s.Login)
	close(s.Logout)
	close(s.Transmit)
}

// GetClient 获取客户端
func (s *StandaloneServer) GetClient(userId string) *UserConn {
	value, ok := s.Clients.Load(userId)
	if !ok {
		return nil
	}
	return value.(*UserConn)
}

// Publish 实现 MessageBroker 接口：发布事件到 Channel
func (s *StandaloneServer) Publish(ctx context.Context, msg []byte) error {
	select {
	case s.Transmit <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RegisterClient 实现 MessageBroker 接口：注册客户端
func (s *StandaloneServer) RegisterClient(client *UserConn) {
	s.Login <- client
}

// UnregisterClient 实现 MessageBroker 接口：注销客户端
func (s *StandaloneServer) UnregisterClient(client *UserConn) {
	s.Logout <- client
}
