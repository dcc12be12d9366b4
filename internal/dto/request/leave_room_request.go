package request

// LeaveRoomRequest 离开房间请求
// 使用位置:
//   - internal/handler/room_handler.go: LeaveRoom
//   - internal/service/room/service.go: LeaveRoom
type LeaveRoomRequest struct {
	RoomUuid string `json:"room_uuid" binding:"required"`
}
