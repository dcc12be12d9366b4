// Package handler 提供 HTTP 请求处理器
// 本文件处理房间相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/service"
	"echoverse_server/pkg/errorx"
)

// RoomHandler 房间请求处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建房间处理器实例
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// CreateRoom 创建房间
// POST /room/create
// 请求体: request.CreateRoomRequest
// 响应: respond.RoomInfoRespond
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req request.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.CreateRoom(c.GetString("user_uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListRooms 公开房间列表
// GET /room/list
// 响应: []respond.RoomInfoRespond
func (h *RoomHandler) ListRooms(c *gin.Context) {
	data, err := h.roomSvc.ListPublicRooms()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRoomInfo 获取房间信息
// GET /room/info?room_uuid=xxx
func (h *RoomHandler) GetRoomInfo(c *gin.Context) {
	roomUuid := c.Query("room_uuid")
	if roomUuid == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.roomSvc.GetRoomInfo(roomUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// JoinRoom 加入房间
// POST /room/join
// 请求体: request.JoinRoomRequest
// 响应: respond.RoomInfoRespond
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req request.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.JoinRoom(c.GetString("user_uuid"), req.RoomUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// JoinByCode 通过房间码加入
// POST /room/joinByCode
// 请求体: request.JoinByCodeRequest
// 响应: respond.RoomInfoRespond
func (h *RoomHandler) JoinByCode(c *gin.Context) {
	var req request.JoinByCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.JoinByCode(c.GetString("user_uuid"), req.RoomCode)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LeaveRoom 离开房间
// POST /room/leave
// 请求体: request.LeaveRoomRequest
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	var req request.LeaveRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomSvc.LeaveRoom(c.GetString("user_uuid"), req.RoomUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DismissRoom 解散房间
// POST /room/dismiss
// 请求体: request.DismissRoomRequest
func (h *RoomHandler) DismissRoom(c *gin.Context) {
	var req request.DismissRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomSvc.DismissRoom(c.GetString("user_uuid"), req.RoomUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetParticipants 获取房间成员列表
// GET /room/participants?room_uuid=xxx
// 响应: []respond.ParticipantRespond
func (h *RoomHandler) GetParticipants(c *gin.Context) {
	roomUuid := c.Query("room_uuid")
	if roomUuid == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.roomSvc.GetParticipants(roomUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
