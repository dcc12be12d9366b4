package request

// ApplyFriendRequest 发起好友申请请求
// 使用位置:
//   - internal/handler/friend_handler.go: SendFriendRequest
//   - internal/service/friend/service.go: SendRequest
type ApplyFriendRequest struct {
	FriendUsername string `json:"friend_username" binding:"required"`
	Message        string `json:"message" binding:"max=100"`
}
