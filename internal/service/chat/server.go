// Package chat 实现了实时推送的核心服务层
// server.go
// 核心职责：聊天服务器聚合结构和依赖注入
// 封装 MessageBroker、KafkaClient 等组件，提供统一的生命周期管理
package chat

import (
	"echoverse_server/internal/dao/mysql/repository"
	myredis "echoverse_server/internal/dao/redis"
)

// ChatServer 聊天服务器聚合结构
// 封装所有实时推送相关组件，通过依赖注入管理生命周期
type ChatServer struct {
	// Broker 消息代理，根据配置为 StandaloneServer 或 MsgConsumer
	Broker MessageBroker

	// KafkaClient Kafka 客户端（仅 Kafka 模式使用）
	KafkaClient *KafkaClient

	// mode 运行模式: "channel" 或 "kafka"
	mode string
}

// ChatServerConfig 聊天服务器配置
type ChatServerConfig struct {
	Mode            string // "channel" 或 "kafka"
	MessageRepo     repository.MessageRepository
	ParticipantRepo repository.ParticipantRepository
	UserRepo        repository.UserRepository
	CacheService    myredis.AsyncCacheService
}

// NewChatServer 创建聊天服务器实例
// 根据配置选择 StandaloneServer 或 MsgConsumer
func NewChatServer(cfg ChatServerConfig) *ChatServer {
	cs := &ChatServer{mode: cfg.Mode}

	// 连接建立/断开时的在线状态标记走同一份缓存
	if cfg.CacheService != nil {
		presenceCache = cfg.CacheService
	}

	if cfg.Mode == "kafka" {
		cs.KafkaClient = NewKafkaClient()
		cs.Broker = NewMsgConsumer(cs.KafkaClient, cfg.MessageRepo, cfg.ParticipantRepo, cfg.UserRepo, cfg.CacheService)
	} else {
		// Channel 模式（默认）
		cs.Broker = NewStandaloneServer(cfg.MessageRepo, cfg.ParticipantRepo, cfg.UserRepo, cfg.CacheService)
	}

	return cs
}

// InitKafka 初始化 Kafka 连接（仅 Kafka 模式需要调用）
func (cs *ChatServer) InitKafka() {
	if cs.KafkaClient != nil {
		cs.KafkaClient.KafkaInit()
	}
}

// Start 启动聊天服务器
func (cs *ChatServer) Start() {
	go cs.Broker.Start()
}

// Close 关闭聊天服务器
func (cs *ChatServer) Close() {
	cs.Broker.Close()
	if cs.KafkaClient != nil {
		cs.KafkaClient.KafkaClose()
	}
}

// GetBroker 获取消息代理
func (cs *ChatServer) GetBroker() MessageBroker {
	return cs.Broker
}
