package request

// JoinRoomRequest 加入房间请求
// 使用位置:
//   - internal/handler/room_handler.go: JoinRoom
//   - internal/service/room/service.go: JoinRoom
type JoinRoomRequest struct {
	RoomUuid string `json:"room_uuid" binding:"required"`
}
