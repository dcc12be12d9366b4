package request

// JoinByCodeRequest 通过房间码加入请求
// 房间码大小写不敏感，服务端统一转为大写处理
// 使用位置:
//   - internal/handler/room_handler.go: JoinByCode
//   - internal/service/room/service.go: JoinByCode
type JoinByCodeRequest struct {
	RoomCode string `json:"room_code" binding:"required,min=4,max=10"`
}
