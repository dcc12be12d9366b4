package request

// UpdateUserInfoRequest 更新个人资料请求
// 使用位置:
//   - internal/handler/user_handler.go: UpdateUserInfo
//   - internal/service/user/service.go: UpdateUserInfo
type UpdateUserInfoRequest struct {
	DisplayName string `json:"display_name" binding:"omitempty,max=30"`
	Avatar      string `json:"avatar" binding:"omitempty,max=255"`
	Bio         string `json:"bio" binding:"omitempty,max=200"`
}
