// Package chat 实现了实时推送的核心服务层
// kafka_consumer.go
// 核心职责：分布式模式下的事件代理实现
// 1. 作为 Kafka 消费者，从消息队列读取全量事件
// 2. 维护本机在线用户连接 (Kafka 模式)
// 3. 事件路由：接收者在本机则通过 WebSocket 推送
package chat

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	myconfig "echoverse_server/internal/config"
	"echoverse_server/internal/dao/mysql/repository"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/pkg/constants"
)

// MsgConsumer 定义了基于 Kafka 的事件代理结构
type MsgConsumer struct {
	// Clients 存储本机在线客户端，Key 为 UserUUID，Value 为 *UserConn
	Clients sync.Map
	// Login 客户端登录通道
	Login chan *UserConn
	// Logout 客户端登出通道
	Logout chan *UserConn

	kafkaClient *KafkaClient
	dispatcher  eventDispatcher
}

// NewMsgConsumer 创建 Kafka 模式 Broker 实例（依赖注入）
func NewMsgConsumer(
	kafkaClient *KafkaClient,
	messageRepo repository.MessageRepository,
	participantRepo repository.ParticipantRepository,
	userRepo repository.UserRepository,
	cacheService myredis.AsyncCacheService,
) *MsgConsumer {
	return &MsgConsumer{
		Login:       make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout:      make(chan *UserConn, constants.CHANNEL_SIZE),
		kafkaClient: kafkaClient,
		dispatcher: eventDispatcher{
			messageRepo:     messageRepo,
			participantRepo: participantRepo,
			userRepo:        userRepo,
			cacheService:    cacheService,
		},
	}
}

// Start 启动 Kafka 消费者服务
// 1. 事件消费循环 (Goroutine): 从 Kafka 读取事件 -> 分发处理
// 2. 客户端管理循环 (Main Loop): 维护 Clients 映射表
func (k *MsgConsumer) Start() {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error(fmt.Sprintf("kafka server panic: %v", r))
		}
	}()

	// 专门的 Goroutine 负责从 Kafka 读取事件
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error(fmt.Sprintf("kafka consumer panic: %v", r))
			}
		}()
		ctx := context.Background()
		for {
			kafkaMessage, err := k.kafkaClient.Consumer.ReadMessage(ctx)
			if err != nil {
				zap.L().Error(err.Error())
				continue
			}
			zap.L().Debug(fmt.Sprintf("topic=%s, partition=%d, offset=%d",
				kafkaMessage.Topic, kafkaMessage.Partition, kafkaMessage.Offset))
			k.dispatcher.handleEvent(kafkaMessage.Value, &k.Clients)
		}
	}()

	// 主循环：处理客户端的登录和登出事件
	for {
		select {
		case client, ok := <-k.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			k.Clients.Store(client.Uuid, client)
			zap.L().Debug(fmt.Sprintf("用户%s已连接", client.Uuid))

		// 只处理仍在映射表里的同一连接，重复登出或已被新连接顶替时跳过
		case client, ok := <-k.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			if value, loaded := k.Clients.Load(client.Uuid); loaded && value.(*UserConn) == client {
				k.Clients.Delete(client.Uuid)
				close(client.SendBack)
				zap.L().Info(fmt.Sprintf("用户%s已断开", client.Uuid))
			}
		}
	}
}

// Close 关闭服务通道
func (k *MsgConsumer) Close() {
	close(k.Login)
	close(k.Logout)
}

// GetClient 获取客户端
func (k *MsgConsumer) GetClient(userId string) *UserConn {
	value, ok := k.Clients.Load(userId)
	if !ok {
		return nil
	}
	return value.(*UserConn)
}

// Publish 实现 MessageBroker 接口：发布事件到 Kafka
func (k *MsgConsumer) Publish(ctx context.Context, msg []byte) error {
	key := []byte(strconv.Itoa(myconfig.GetConfig().KafkaConfig.Partition))
	return k.kafkaClient.SendMessage(ctx, key, msg)
}

// RegisterClient 实现 MessageBroker 接口：注册客户端
func (k *MsgConsumer) RegisterClient(client *UserConn) {
	k.Login <- client
}

// UnregisterClient 实现 MessageBroker 接口：注销客户端
func (k *MsgConsumer) UnregisterClient(client *UserConn) {
	k.Logout <- client
}
