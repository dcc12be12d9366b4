// Package chat 实现了实时推送的核心服务层
// events.go
// 核心职责：定义房间事件信封
// 聊天消息、活动状态变更、成员变动统一走同一条事件流
package chat

import "encoding/json"

// 事件通道
const (
	ChannelChat       = "chat"       // 聊天消息
	ChannelActivity   = "activity"   // 共享活动状态变更
	ChannelMembership = "membership" // 成员加入/离开/房间解散
)

// 事件动作
const (
	ActionMessage   = "message"
	ActionSelect    = "select"
	ActionPlay      = "play"
	ActionPause     = "pause"
	ActionSeek      = "seek"
	ActionJoined    = "joined"
	ActionLeft      = "left"
	ActionDismissed = "dismissed"
)

// Event 房间事件信封
// 所有经 Broker 流转的数据都用此结构包装，
// Payload 按 Channel 不同分别为 ChatMessageRequest、
// ActivityStateRespond 或 MembershipPayload
type Event struct {
	Channel  string          `json:"channel"`
	Action   string          `json:"action"`
	RoomUuid string          `json:"room_uuid"`
	SendId   string          `json:"send_id"`
	Payload  json.RawMessage `json:"payload"`
}

// MembershipPayload 成员变动事件内容
// ParticipantCount 为变动后的实时人数
type MembershipPayload struct {
	UserUuid         string `json:"user_uuid"`
	DisplayName      string `json:"display_name"`
	ParticipantCount int64  `json:"participant_count"`
}

// NewEvent 构造事件并序列化 Payload
func NewEvent(channel, action, roomUuid, sendId string, payload interface{}) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Channel:  channel,
		Action:   action,
		RoomUuid: roomUuid,
		SendId:   sendId,
		Payload:  raw,
	}, nil
}

// Marshal 序列化整个事件
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
