// Package handler 提供 HTTP 请求处理器
// 本文件处理消息相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/service"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// GetHistory 分页获取房间历史消息
// GET /message/history?room_uuid=xxx&before=0&limit=50
// 查询参数: request.MessageHistoryRequest
// 响应: []respond.MessageRespond，最新在前
func (h *MessageHandler) GetHistory(c *gin.Context) {
	var req request.MessageHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.GetHistory(c.GetString("user_uuid"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
