package request

// DismissRoomRequest 解散房间请求，仅房主可操作
// 使用位置:
//   - internal/handler/room_handler.go: DismissRoom
//   - internal/service/room/service.go: DismissRoom
type DismissRoomRequest struct {
	RoomUuid string `json:"room_uuid" binding:"required"`
}
