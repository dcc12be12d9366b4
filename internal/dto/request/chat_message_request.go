package request

// ChatMessageRequest WebSocket 入站聊天消息
// 使用位置:
//   - internal/service/chat/ws_gateway.go: 读协程解析
//   - internal/service/message/service.go: SaveMessage
type ChatMessageRequest struct {
	RoomUuid string `json:"room_uuid"`
	Type     int8   `json:"type"` // 0 文本 1 图片 2 语音
	Content  string `json:"content"`
	Url      string `json:"url"`
}
