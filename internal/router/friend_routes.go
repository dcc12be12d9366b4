// Package router 提供 HTTP 路由注册
// 本文件定义好友相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterFriendRoutes 注册好友相关路由（需要认证）
// 包括好友列表查询和好友申请管理
func (rt *Router) RegisterFriendRoutes(rg *gin.RouterGroup) {
	friendGroup := rg.Group("/friend")
	{
		// ===== 查询 =====
		friendGroup.GET("/list", rt.handlers.Friend.ListFriends)      // 获取好友列表
		friendGroup.GET("/requests", rt.handlers.Friend.ListRequests) // 获取待处理的好友申请

		// ===== 好友申请 =====
		friendGroup.POST("/request", rt.handlers.Friend.SendRequest)    // 申请添加好友
		friendGroup.POST("/accept", rt.handlers.Friend.AcceptRequest)   // 通过好友申请
		friendGroup.POST("/decline", rt.handlers.Friend.DeclineRequest) // 拒绝好友申请
	}
}
