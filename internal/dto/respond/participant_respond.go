package respond

// ParticipantRespond 房间成员信息响应
// 使用位置:
//   - internal/service/room/service.go: GetParticipants
type ParticipantRespond struct {
	UserUuid    string `json:"user_uuid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Status      string `json:"status"`
	JoinedAt    string `json:"joined_at"`
}
