// Package chat 实现了实时推送的核心服务层
// broker.go
// 核心职责：定义消息代理接口
// 抽象事件发布和客户端管理，支持 Kafka 和 Channel 两种实现
package chat

import "context"

// MessageBroker 定义消息代理接口
// 支持多种实现：MsgConsumer (Kafka 分布式), StandaloneServer (单机 Channel)
type MessageBroker interface {
	// Publish 发布事件到消息队列/通道，msg 为序列化后的 Event
	Publish(ctx context.Context, msg []byte) error
	// RegisterClient 注册客户端连接
	RegisterClient(client *UserConn)
	// UnregisterClient 注销客户端连接
	UnregisterClient(client *UserConn)
	// GetClient 获取指定用户的连接
	GetClient(userId string) *UserConn
	// Start 启动事件消费循环
	Start()
	// Close 关闭代理资源
	Close()
}

// GlobalBroker 全局消息代理实例
// 在 main.go 中根据配置初始化为 MsgConsumer 或 StandaloneServer
var GlobalBroker MessageBroker

// PublishEvent 构造事件并通过全局 Broker 发布
// Service 层发布活动状态和成员变动事件的统一入口
func PublishEvent(ctx context.Context, channel, action, roomUuid, sendId string, payload interface{}) error {
	if GlobalBroker == nil {
		return nil
	}
	event, err := NewEvent(channel, action, roomUuid, sendId, payload)
	if err != nil {
		return err
	}
	data, err := event.Marshal()
	if err != nil {
		return err
	}
	return GlobalBroker.Publish(ctx, data)
}
