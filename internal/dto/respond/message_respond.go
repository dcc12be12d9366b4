package respond

// MessageRespond 聊天消息响应
// Uuid 为雪花 ID 的十进制字符串，避免前端 JS 丢精度
// 使用位置:
//   - internal/service/message/service.go: GetHistory, SaveMessage
type MessageRespond struct {
	Uuid       string `json:"uuid"`
	RoomUuid   string `json:"room_uuid"`
	Type       int8   `json:"type"`
	Content    string `json:"content"`
	Url        string `json:"url"`
	SendId     string `json:"send_id"`
	SendName   string `json:"send_name"`
	SendAvatar string `json:"send_avatar"`
	CreatedAt  string `json:"created_at"`
}
