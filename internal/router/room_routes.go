// Package router 提供 HTTP 路由注册
// 本文件定义房间相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoomRoutes 注册房间相关路由（需要认证）
// 包括房间创建、加入/退出、成员查询以及房间内播放活动控制
func (rt *Router) RegisterRoomRoutes(rg *gin.RouterGroup) {
	roomGroup := rg.Group("/room")
	{
		// ===== 房间基本操作 =====
		roomGroup.POST("/create", rt.handlers.Room.CreateRoom)            // 创建房间
		roomGroup.GET("/list", rt.handlers.Room.ListRooms)                // 获取公开房间列表
		roomGroup.GET("/info", rt.handlers.Room.GetRoomInfo)              // 获取房间详情
		roomGroup.POST("/join", rt.handlers.Room.JoinRoom)                // 加入房间
		roomGroup.POST("/joinByCode", rt.handlers.Room.JoinByCode)        // 通过房间码加入
		roomGroup.POST("/leave", rt.handlers.Room.LeaveRoom)              // 退出房间
		roomGroup.POST("/dismiss", rt.handlers.Room.DismissRoom)          // 解散房间（房主）
		roomGroup.GET("/participants", rt.handlers.Room.GetParticipants)  // 获取房间成员列表

		// ===== 播放活动控制 =====
		roomGroup.GET("/activity", rt.handlers.Activity.GetState)             // 获取当前播放状态
		roomGroup.POST("/activity/select", rt.handlers.Activity.SelectItem)   // 选定播放条目
		roomGroup.POST("/activity/play", rt.handlers.Activity.Play)           // 开始/恢复播放
		roomGroup.POST("/activity/pause", rt.handlers.Activity.Pause)         // 暂停播放
		roomGroup.POST("/activity/seek", rt.handlers.Activity.Seek)           // 跳转播放进度
	}
}
