package respond

// FriendRespond 好友信息响应
// Status 优先取 Redis 中的实时状态，缓存未命中回落到数据库
// 使用位置:
//   - internal/service/friend/service.go: ListFriends
type FriendRespond struct {
	UserUuid    string `json:"user_uuid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Status      string `json:"status"`
}

// FriendRequestRespond 待处理好友申请响应
// 使用位置:
//   - internal/service/friend/service.go: ListPendingRequests
type FriendRequestRespond struct {
	RequestUuid string `json:"request_uuid"`
	FromUuid    string `json:"from_uuid"`
	FromName    string `json:"from_name"`
	FromAvatar  string `json:"from_avatar"`
	Message     string `json:"message"`
	CreatedAt   string `json:"created_at"`
}
