package request

// HandleFriendRequest 处理好友申请请求，接受或拒绝
// 使用位置:
//   - internal/handler/friend_handler.go: AcceptFriendRequest, DeclineFriendRequest
//   - internal/service/friend/service.go: AcceptRequest, DeclineRequest
type HandleFriendRequest struct {
	RequestUuid string `json:"request_uuid" binding:"required"`
}
