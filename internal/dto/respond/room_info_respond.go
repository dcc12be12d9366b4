package respond

// RoomInfoRespond 房间信息响应
// ParticipantCount 为实时统计值，不来自任何落库计数器
// 使用位置:
//   - internal/service/room/service.go: ListPublicRooms, CreateRoom, JoinRoom
type RoomInfoRespond struct {
	Uuid             string `json:"uuid"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	RoomCode         string `json:"room_code"`
	CreatorId        string `json:"creator_id"`
	CreatorName      string `json:"creator_name"`
	IsPrivate        bool   `json:"is_private"`
	MaxParticipants  int    `json:"max_participants"`
	ParticipantCount int64  `json:"participant_count"`
	CreatedAt        string `json:"created_at"`
}
