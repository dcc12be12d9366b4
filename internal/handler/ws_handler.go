// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echoverse_server/internal/service/chat"
	"echoverse_server/pkg/errorx"
	"echoverse_server/pkg/util/jwt"
)

// WsConnectHandler 建立 WebSocket 连接
// GET /wss?token=xxx
// 浏览器 WebSocket API 无法设置请求头，令牌通过查询参数携带
// 功能:
//   - 校验 Access Token，连接身份以令牌为准
//   - 将 HTTP 连接升级为 WebSocket 连接
//   - 注册客户端到在线用户列表，开始收发事件
func WsConnectHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "缺少令牌",
		})
		return
	}
	claims, err := jwt.ParseToken(token)
	if err != nil {
		zap.L().Warn("ws连接令牌校验失败", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "令牌无效或已过期",
		})
		return
	}
	// 与 JWT 中间件一致，Refresh Token 不能用来建立连接
	if claims.Subject != "access_token" {
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "令牌类型错误",
		})
		return
	}
	// 初始化 WebSocket 客户端连接
	chat.NewClientInit(c, claims.UserID)
}

// WsDisconnectHandler 主动断开 WebSocket 连接
// POST /ws/logout
// 功能:
//   - 从在线用户列表中移除客户端
//   - 关闭 WebSocket 连接
func WsDisconnectHandler(c *gin.Context) {
	clientId := c.GetString("user_uuid")
	if clientId == "" {
		HandleError(c, errorx.New(errorx.CodeUnauthorized, "未登录"))
		return
	}
	if err := chat.ClientLogout(clientId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
