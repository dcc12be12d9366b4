package request

// UpdateStatusRequest 更新在线状态请求
// 使用位置:
//   - internal/handler/user_handler.go: UpdateStatus
//   - internal/service/user/service.go: SetStatus
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"` // online/away/busy/offline
}
