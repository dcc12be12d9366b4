// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 相关的路由
package router

import (
	"echoverse_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 连接入口
// 浏览器 WebSocket API 无法携带请求头，令牌通过查询参数传递，因此不走 JWT 中间件
// 请求示例: ws://host:port/wss?token=xxx
func (rt *Router) RegisterWebSocketRoutes(r *gin.Engine) {
	r.GET("/wss", handler.WsConnectHandler)
}
