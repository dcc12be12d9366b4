// Package handler 提供 HTTP 请求处理器
// 本文件处理认证相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/service"
)

// AuthHandler 认证请求处理器
type AuthHandler struct {
	userSvc service.UserService
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(userSvc service.UserService) *AuthHandler {
	return &AuthHandler{userSvc: userSvc}
}

// RefreshToken 刷新令牌
// POST /auth/refresh
// 请求体: request.RefreshTokenRequest
// 响应: respond.RefreshTokenRespond
//
// 单点互踢机制:
//   - 登录时在 Redis 中存储 Refresh Token ID
//   - 其他设备登录会覆盖旧的 Token ID
//   - 使用旧 Token ID 刷新时会被拒绝
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.RefreshToken(req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
