package request

// 共享活动控制请求
// 使用位置:
//   - internal/handler/activity_handler.go
//   - internal/service/activity/service.go

// ActivitySelectRequest 选择播放项
type ActivitySelectRequest struct {
	RoomUuid string `json:"room_uuid" binding:"required"`
	ItemRef  string `json:"item_ref" binding:"required,max=500"`
}

// ActivityPlayRequest 开始或恢复播放
type ActivityPlayRequest struct {
	RoomUuid   string `json:"room_uuid" binding:"required"`
	PositionMs int64  `json:"position_ms" binding:"min=0"`
}

// ActivityPauseRequest 暂停播放
type ActivityPauseRequest struct {
	RoomUuid   string `json:"room_uuid" binding:"required"`
	PositionMs int64  `json:"position_ms" binding:"min=0"`
}

// ActivitySeekRequest 跳转进度
type ActivitySeekRequest struct {
	RoomUuid   string `json:"room_uuid" binding:"required"`
	PositionMs int64  `json:"position_ms" binding:"min=0"`
}
