package request

// MessageHistoryRequest 历史消息分页请求
// Before 为上一页最旧一条消息的 uuid，首页传 0
// 使用位置:
//   - internal/handler/message_handler.go: GetMessageHistory
//   - internal/service/message/service.go: GetHistory
type MessageHistoryRequest struct {
	RoomUuid string `json:"room_uuid" form:"room_uuid" binding:"required"`
	Before   int64  `json:"before" form:"before" binding:"min=0"`
	Limit    int    `json:"limit" form:"limit" binding:"omitempty,min=1,max=100"`
}
