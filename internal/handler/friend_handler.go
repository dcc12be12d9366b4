// Package handler 提供 HTTP 请求处理器
// 本文件处理好友相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/service"
)

// FriendHandler 好友请求处理器
type FriendHandler struct {
	friendSvc service.FriendService
}

// NewFriendHandler 创建好友处理器实例
func NewFriendHandler(friendSvc service.FriendService) *FriendHandler {
	return &FriendHandler{friendSvc: friendSvc}
}

// SendRequest 发起好友申请
// POST /friend/request
// 请求体: request.ApplyFriendRequest
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var req request.ApplyFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.SendRequest(c.GetString("user_uuid"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// AcceptRequest 接受好友申请
// POST /friend/accept
// 请求体: request.HandleFriendRequest
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	var req request.HandleFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.AcceptRequest(c.GetString("user_uuid"), req.RequestUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeclineRequest 拒绝好友申请
// POST /friend/decline
// 请求体: request.HandleFriendRequest
func (h *FriendHandler) DeclineRequest(c *gin.Context) {
	var req request.HandleFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.DeclineRequest(c.GetString("user_uuid"), req.RequestUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListFriends 好友列表
// GET /friend/list
// 响应: []respond.FriendRespond
func (h *FriendHandler) ListFriends(c *gin.Context) {
	data, err := h.friendSvc.ListFriends(c.GetString("user_uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListRequests 发给我的待处理申请列表
// GET /friend/requests
// 响应: []respond.FriendRequestRespond
func (h *FriendHandler) ListRequests(c *gin.Context) {
	data, err := h.friendSvc.ListPendingRequests(c.GetString("user_uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
