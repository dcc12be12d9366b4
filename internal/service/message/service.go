// Package message 实现消息历史业务逻辑
// 消息的写入在 chat 包的事件分发中完成，本包只负责查询
package message

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"echoverse_server/internal/config"
	"echoverse_server/internal/dao/mysql/repository"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
	"echoverse_server/pkg/constants"
	"echoverse_server/pkg/errorx"
)

// messageService 消息业务逻辑实现
type messageService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewMessageService 构造函数
func NewMessageService(repos *repository.Repositories, cache myredis.AsyncCacheService) *messageService {
	return &messageService{repos: repos, cache: cache}
}

// GetHistory 分页获取房间历史消息
// 最新在前，Before 为排他游标（取雪花 ID 小于该值的消息）
// 首页优先走 Redis 缓存，未命中查库后回填，后续新消息由事件分发追加
func (m *messageService) GetHistory(userUuid string, req request.MessageHistoryRequest) ([]respond.MessageRespond, error) {
	// 只有房间成员能看历史
	if _, err := m.repos.Participant.FindByRoomAndUser(req.RoomUuid, userUuid); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUnauthorized, "不是房间成员，无法查看历史消息")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	pageLimit := config.GetConfig().RoomConfig.GetHistoryPageLimit()
	limit := req.Limit
	if limit <= 0 || limit > pageLimit {
		limit = pageLimit
	}

	// 缓存始终持有最新一批消息（最新在前），首页请求可直接截取
	if req.Before == 0 && m.cache != nil {
		if rspString, err := m.cache.GetOrError(context.Background(), "room_messages_"+req.RoomUuid); err == nil {
			var cached []respond.MessageRespond
			if err := json.Unmarshal([]byte(rspString), &cached); err == nil {
				if len(cached) > limit {
					cached = cached[:limit]
				}
				return cached, nil
			}
		}
	}

	messages, err := m.repos.Message.FindByRoomUuid(req.RoomUuid, limit, req.Before)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.MessageRespond, 0, len(messages))
	for _, msg := range messages {
		list = append(list, respond.MessageRespond{
			Uuid:       strconv.FormatInt(msg.Uuid, 10),
			RoomUuid:   msg.RoomUuid,
			Type:       msg.Type,
			Content:    msg.Content,
			Url:        msg.Url,
			SendId:     msg.SendId,
			SendName:   msg.SendName,
			SendAvatar: msg.SendAvatar,
			CreatedAt:  msg.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	// 整页首页结果异步回填缓存，供事件分发时追加
	// 只回填完整页，保证缓存内容始终是房间最新的一批消息
	if req.Before == 0 && limit == pageLimit && m.cache != nil {
		cached := list
		m.cache.SubmitTask(func() {
			if rspByte, err := json.Marshal(cached); err == nil {
				_ = m.cache.Set(context.Background(), "room_messages_"+req.RoomUuid,
					string(rspByte), time.Minute*constants.REDIS_TIMEOUT)
			}
		})
	}
	return list, nil
}
