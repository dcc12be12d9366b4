// Package chat 实现了实时推送的核心服务层
// ws_gateway.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)
// 2. 封装 UserConn 对象，管理读写协程 (Read/Write Loop)
// 3. 通过 MessageBroker 接口解耦事件投递逻辑
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	dao "echoverse_server/internal/dao/mysql"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/internal/dto/request"
	"echoverse_server/pkg/constants"
	"echoverse_server/pkg/enum/message/message_status_enum"
	"echoverse_server/pkg/enum/user/presence_enum"
)

// MessageBack 用于回传事件给前端
// Uuid 非 0 时表示关联的聊天消息，写入成功后标记为已发送
type MessageBack struct {
	Message []byte
	Uuid    int64
}

// UserConn 表示一个 WebSocket 客户端连接
type UserConn struct {
	Conn     *websocket.Conn
	Uuid     string
	SendBack chan *MessageBack // 给前端
}

// 前后端分离部署，允许跨域握手
var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var ctx = context.Background()

// presenceCache 在线状态缓存，由 NewChatServer 注入
var presenceCache myredis.CacheService

// markClientOnline 连接建立时把用户标记为在线
func markClientOnline(userUuid string) {
	if presenceCache == nil {
		return
	}
	if err := presenceCache.Set(ctx, myredis.UserStatusKey(userUuid),
		presence_enum.ONLINE, time.Minute*constants.REDIS_TIMEOUT); err != nil {
		zap.L().Error(err.Error())
	}
	if err := presenceCache.AddToSet(ctx, myredis.OnlineUsersKey, userUuid); err != nil {
		zap.L().Error(err.Error())
	}
}

// markClientOffline 连接断开时把用户标记为离线
func markClientOffline(userUuid string) {
	if presenceCache == nil {
		return
	}
	if err := presenceCache.Set(ctx, myredis.UserStatusKey(userUuid),
		presence_enum.OFFLINE, time.Minute*constants.REDIS_TIMEOUT); err != nil {
		zap.L().Error(err.Error())
	}
	if err := presenceCache.RemoveFromSet(ctx, myredis.OnlineUsersKey, userUuid); err != nil {
		zap.L().Error(err.Error())
	}
}

// Read 从 WebSocket 读取入站消息并通过 Broker 发布
// 入站只允许聊天消息，发送者身份取自连接本身而非报文
// 读取出错（含对端关闭）时注销连接并标记离线
func (c *UserConn) Read() {
	zap.L().Info("ws read goroutine start")
	defer func() {
		GlobalBroker.UnregisterClient(c)
		_ = c.Conn.Close()
		markClientOffline(c.Uuid)
	}()
	for {
		_, jsonMessage, err := c.Conn.ReadMessage()
		if err != nil {
			zap.L().Error(err.Error())
			return
		}
		var chatReq request.ChatMessageRequest
		if err := json.Unmarshal(jsonMessage, &chatReq); err != nil {
			zap.L().Error("入站消息解析失败", zap.Error(err))
			continue
		}
		event, err := NewEvent(ChannelChat, ActionMessage, chatReq.RoomUuid, c.Uuid, chatReq)
		if err != nil {
			zap.L().Error(err.Error())
			continue
		}
		data, err := event.Marshal()
		if err != nil {
			zap.L().Error(err.Error())
			continue
		}
		if err := GlobalBroker.Publish(ctx, data); err != nil {
			zap.L().Error(err.Error())
		}
	}
}

// Write 从 SendBack 通道读取事件并发送给 WebSocket
func (c *UserConn) Write() {
	zap.L().Info("ws write goroutine start")
	for messageBack := range c.SendBack {
		err := c.Conn.WriteMessage(websocket.TextMessage, messageBack.Message)
		if err != nil {
			zap.L().Error(err.Error())
			return
		}
		// 顺利发送后把聊天消息标记为已发送
		if messageBack.Uuid != 0 && dao.Repos != nil {
			if err := dao.Repos.Message.UpdateStatus(messageBack.Uuid, message_status_enum.Sent); err != nil {
				zap.L().Error(err.Error())
			}
		}
	}
}

// NewClientInit 前端建立 WebSocket 连接时调用
func NewClientInit(c *gin.Context, clientId string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	client := &UserConn{
		Conn:     conn,
		Uuid:     clientId,
		SendBack: make(chan *MessageBack, constants.CHANNEL_SIZE),
	}
	// 通过接口注册 WebSocket 客户端
	GlobalBroker.RegisterClient(client)
	markClientOnline(clientId)
	go client.Read()
	go client.Write()
	zap.L().Info("ws连接成功", zap.String("uuid", clientId))
}

// ClientLogout 前端主动断开连接时调用
// SendBack 由 Broker 主循环在移除客户端后关闭，此处只关闭底层连接
func ClientLogout(clientId string) error {
	client := GlobalBroker.GetClient(clientId)
	if client != nil {
		GlobalBroker.UnregisterClient(client)
		markClientOffline(clientId)
		if err := client.Conn.Close(); err != nil {
			zap.L().Error(err.Error())
			return err
		}
	}
	return nil
}
