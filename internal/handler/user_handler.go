// Package handler 提供 HTTP 请求处理器
// 本文件处理用户相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/service"
)

// UserHandler 用户请求处理器
// 通过构造函数注入 UserService，遵循依赖倒置原则
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 用户注册
// POST /register
// 请求体: request.RegisterRequest
// 响应: respond.RegisterRespond (用户信息 + JWT Token)
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Login 用户登录（密码登录）
// POST /login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond (用户信息 + JWT Token)
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUserInfo 获取用户信息
// GET /user/info?uuid=xxx
// uuid 缺省时返回当前登录用户自己的信息
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	uuid := c.Query("uuid")
	if uuid == "" {
		uuid = c.GetString("user_uuid")
	}
	data, err := h.userSvc.GetUserInfo(uuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateUserInfo 修改个人资料
// POST /user/updateProfile
// 请求体: request.UpdateUserInfoRequest
func (h *UserHandler) UpdateUserInfo(c *gin.Context) {
	var req request.UpdateUserInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.UpdateUserInfo(c.GetString("user_uuid"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UpdateStatus 设置在线状态
// POST /user/status
// 请求体: request.UpdateStatusRequest
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.SetStatus(c.GetString("user_uuid"), req.Status); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
