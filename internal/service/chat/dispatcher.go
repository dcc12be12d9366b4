// Package chat 实现了实时推送的核心服务层
// dispatcher.go
// 核心职责：事件的持久化与房间内扇出
// Channel 模式和 Kafka 模式共用同一套分发逻辑
package chat

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"echoverse_server/internal/config"
	"echoverse_server/internal/dao/mysql/repository"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
	"echoverse_server/internal/model"
	"echoverse_server/pkg/constants"
	"echoverse_server/pkg/enum/message/message_status_enum"
	"echoverse_server/pkg/enum/message/message_type_enum"
	"echoverse_server/pkg/util/snowflake"
)

// eventDispatcher 封装事件处理逻辑
// 两种 Broker 各自持有一份，注入各自的依赖
type eventDispatcher struct {
	messageRepo     repository.MessageRepository
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
	cacheService    myredis.AsyncCacheService
}

// roomMessagesKey 房间最近消息缓存键
func roomMessagesKey(roomUuid string) string {
	return "room_messages_" + roomUuid
}

// handleEvent 处理一条序列化事件
// 聊天消息先落库再扇出，活动和成员事件由 Service 层落库后发来，直接扇出
func (d *eventDispatcher) handleEvent(data []byte, clients *sync.Map) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		zap.L().Error("事件反序列化失败", zap.Error(err))
		return
	}

	switch event.Channel {
	case ChannelChat:
		d.handleChatMessage(&event, clients)
	case ChannelActivity, ChannelMembership:
		// 已由 Service 层持久化，直接按房间扇出
		d.fanOutToRoom(event.RoomUuid, data, 0, clients)
	default:
		zap.L().Warn("未知事件通道", zap.String("channel", event.Channel))
	}
}

// handleChatMessage 处理聊天消息
// 1. 生成 Snowflake ID
// 2. 持久化到 MySQL
// 3. 扇出给房间全部在线成员（含发送者回显）
// 4. 异步更新 Redis 中的房间最近消息缓存
func (d *eventDispatcher) handleChatMessage(event *Event, clients *sync.Map) {
	var req request.ChatMessageRequest
	if err := json.Unmarshal(event.Payload, &req); err != nil {
		zap.L().Error("聊天消息反序列化失败", zap.Error(err))
		return
	}

	// 纯空白文本消息直接丢弃
	if req.Type == message_type_enum.Text && strings.TrimSpace(req.Content) == "" {
		return
	}

	// 非房间成员的消息不处理
	if d.participantRepo != nil {
		if _, err := d.participantRepo.FindByRoomAndUser(event.RoomUuid, event.SendId); err != nil {
			zap.L().Warn("非房间成员发送消息，已丢弃",
				zap.String("room", event.RoomUuid), zap.String("user", event.SendId))
			return
		}
	}

	// 发送者资料服务端补全，不信任客户端携带的昵称头像
	sendName, sendAvatar := "", ""
	if d.userRepo != nil {
		if sender, err := d.userRepo.FindByUuid(event.SendId); err == nil {
			sendName = sender.DisplayName
			sendAvatar = sender.Avatar
		}
	}

	message := model.Message{
		Uuid:       snowflake.GenerateID(),
		RoomUuid:   event.RoomUuid,
		Type:       req.Type,
		Content:    req.Content,
		Url:        req.Url,
		SendId:     event.SendId,
		SendName:   sendName,
		SendAvatar: sendAvatar,
		Status:     message_status_enum.Unsent,
	}
	if message.Type != message_type_enum.Text {
		message.Content = ""
	}

	if d.messageRepo != nil {
		if err := d.messageRepo.Create(&message); err != nil {
			zap.L().Error("保存聊天消息失败", zap.Error(err))
			return
		}
	}

	messageRsp := respond.MessageRespond{
		Uuid:       strconv.FormatInt(message.Uuid, 10),
		RoomUuid:   message.RoomUuid,
		Type:       message.Type,
		Content:    message.Content,
		Url:        message.Url,
		SendId:     message.SendId,
		SendName:   message.SendName,
		SendAvatar: message.SendAvatar,
		CreatedAt:  message.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	outEvent, err := NewEvent(ChannelChat, ActionMessage, event.RoomUuid, event.SendId, messageRsp)
	if err != nil {
		zap.L().Error("构造聊天事件失败", zap.Error(err))
		return
	}
	jsonMessage, err := outEvent.Marshal()
	if err != nil {
		zap.L().Error("序列化聊天事件失败", zap.Error(err))
		return
	}

	d.fanOutToRoom(event.RoomUuid, jsonMessage, message.Uuid, clients)

	// 异步更新房间最近消息缓存
	// 缓存与历史接口同序（最新在前），新消息插到头部，超页后裁掉最旧的
	if d.cacheService != nil {
		d.cacheService.SubmitTask(func() {
			key := roomMessagesKey(message.RoomUuid)
			rspString, err := d.cacheService.GetOrError(context.Background(), key)
			if err != nil {
				return // 缓存未命中不回填，按需由历史查询重建
			}
			var list []respond.MessageRespond
			if err := json.Unmarshal([]byte(rspString), &list); err != nil {
				return
			}
			list = append([]respond.MessageRespond{messageRsp}, list...)
			if pageLimit := config.GetConfig().RoomConfig.GetHistoryPageLimit(); len(list) > pageLimit {
				list = list[:pageLimit]
			}
			if rspByte, err := json.Marshal(list); err == nil {
				_ = d.cacheService.Set(context.Background(), key, string(rspByte), time.Minute*constants.REDIS_TIMEOUT)
			}
		})
	}
}

// fanOutToRoom 将序列化事件推送给房间全部在线成员
// msgUuid 非 0 时，写协程发送成功后会把该消息标记为已发送
func (d *eventDispatcher) fanOutToRoom(roomUuid string, jsonMessage []byte, msgUuid int64, clients *sync.Map) {
	if d.participantRepo == nil {
		return
	}
	participants, err := d.participantRepo.FindByRoomUuid(roomUuid)
	if err != nil {
		zap.L().Error("查询房间成员失败", zap.Error(err))
		return
	}

	messageBack := &MessageBack{
		Message: jsonMessage,
		Uuid:    msgUuid,
	}
	for _, p := range participants {
		if value, ok := clients.Load(p.UserUuid); ok {
			receiveClient := value.(*UserConn)
			receiveClient.SendBack <- messageBack
		}
	}
}
