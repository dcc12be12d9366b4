package respond

// ActivityStateRespond 共享活动状态响应
// Since 为服务端写入时间，客户端据此做最后写入优先判断
// 使用位置:
//   - internal/service/activity/service.go
type ActivityStateRespond struct {
	RoomUuid   string `json:"room_uuid"`
	State      int8   `json:"state"` // 0 空闲 1 已选定 2 播放中 3 已暂停
	ItemRef    string `json:"item_ref"`
	PositionMs int64  `json:"position_ms"`
	IsPlaying  bool   `json:"is_playing"`
	UpdatedBy  string `json:"updated_by"`
	Since      string `json:"since"`
}
