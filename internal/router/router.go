// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"echoverse_server/internal/handler"
	"echoverse_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 持有 handler 集合，路由注册全部走方法
type Router struct {
	handlers *handler.Handlers
}

func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	// 公开接口（无需认证）
	rt.RegisterAuthRoutes(r)
	rt.RegisterWebSocketRoutes(r)

	// 需要认证的接口统一挂 JWT 中间件
	authed := r.Group("")
	authed.Use(middleware.JWTAuth())
	{
		rt.RegisterUserRoutes(authed)
		rt.RegisterRoomRoutes(authed)
		rt.RegisterMessageRoutes(authed)
		rt.RegisterFriendRoutes(authed)
	}
}
