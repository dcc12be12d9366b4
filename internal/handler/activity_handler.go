// Package handler 提供 HTTP 请求处理器
// 本文件处理房间共享活动相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/service"
	"echoverse_server/pkg/errorx"
)

// ActivityHandler 共享活动请求处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建共享活动处理器实例
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// GetState 获取房间活动状态
// GET /room/activity?room_uuid=xxx
// 响应: respond.ActivityStateRespond
func (h *ActivityHandler) GetState(c *gin.Context) {
	roomUuid := c.Query("room_uuid")
	if roomUuid == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.activitySvc.GetState(roomUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SelectItem 选定播放条目
// POST /room/activity/select
// 请求体: request.ActivitySelectRequest
func (h *ActivityHandler) SelectItem(c *gin.Context) {
	var req request.ActivitySelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.activitySvc.SelectItem(c.GetString("user_uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Play 开始或恢复播放
// POST /room/activity/play
// 请求体: request.ActivityPlayRequest
func (h *ActivityHandler) Play(c *gin.Context) {
	var req request.ActivityPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.activitySvc.Play(c.GetString("user_uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Pause 暂停播放
// POST /room/activity/pause
// 请求体: request.ActivityPauseRequest
func (h *ActivityHandler) Pause(c *gin.Context) {
	var req request.ActivityPauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.activitySvc.Pause(c.GetString("user_uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Seek 跳转进度
// POST /room/activity/seek
// 请求体: request.ActivitySeekRequest
func (h *ActivityHandler) Seek(c *gin.Context) {
	var req request.ActivitySeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.activitySvc.Seek(c.GetString("user_uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
