package respond

// GetUserInfoRespond 个人主页信息响应
// RoomsCreated 和 FriendCount 为实时统计
// 使用位置:
//   - internal/service/user/service.go: GetUserInfo
type GetUserInfoRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar"`
	Bio          string `json:"bio"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	RoomsCreated int64  `json:"rooms_created"`
	FriendCount  int64  `json:"friend_count"`
}
