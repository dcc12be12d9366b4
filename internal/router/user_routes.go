// Package router 提供 HTTP 路由注册
// 本文件定义用户相关的路由
package router

import (
	"echoverse_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由（需要认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/info", rt.handlers.User.GetUserInfo)              // 获取用户资料
		userGroup.POST("/updateProfile", rt.handlers.User.UpdateUserInfo) // 更新个人资料
		userGroup.POST("/status", rt.handlers.User.UpdateStatus)          // 设置在线状态
	}

	// WebSocket 断开由客户端主动上报
	rg.POST("/ws/logout", handler.WsDisconnectHandler)
}
