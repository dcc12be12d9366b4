package request

// CreateRoomRequest 创建房间请求
// 使用位置:
//   - internal/handler/room_handler.go: CreateRoom
//   - internal/service/room/service.go: CreateRoom
type CreateRoomRequest struct {
	Name            string `json:"name" binding:"required,max=50"`
	Type            string `json:"type" binding:"required"` // music/watch/hangout
	IsPrivate       bool   `json:"is_private"`
	MaxParticipants int    `json:"max_participants" binding:"omitempty,min=2,max=100"`
}
