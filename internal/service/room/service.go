// Package room 实现房间相关业务逻辑
// 包含房间的创建、发现、加入、离开、解散和成员查询
// 房间实时人数一律通过成员表 COUNT 得出，任何地方不维护落库计数器
package room

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"echoverse_server/internal/config"
	"echoverse_server/internal/dao/mysql/repository"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
	"echoverse_server/internal/model"
	"echoverse_server/internal/service/chat"
	"echoverse_server/pkg/enum/activity/activity_state_enum"
	"echoverse_server/pkg/enum/room/room_type_enum"
	"echoverse_server/pkg/errorx"
	"echoverse_server/pkg/util/random"
)

// 房间码生成冲突时的最大重试次数
const maxCodeRetries = 10

// roomService 房间业务逻辑实现
type roomService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewRoomService 构造函数，注入所有依赖
func NewRoomService(repos *repository.Repositories, cache myredis.AsyncCacheService) *roomService {
	return &roomService{repos: repos, cache: cache}
}

// CreateRoom 创建房间
// 房间、创建者成员记录、初始活动状态在同一事务内写入，
// 任意一步失败则全部回滚，不会出现没有活动状态的房间
func (r *roomService) CreateRoom(creatorId string, req request.CreateRoomRequest) (*respond.RoomInfoRespond, error) {
	if !room_type_enum.Valid(req.Type) {
		return nil, errorx.New(errorx.CodeInvalidParam, "无效的房间类型")
	}

	creator, err := r.repos.User.FindByUuid(creatorId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	roomConf := config.GetConfig().RoomConfig
	maxParticipants := req.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = roomConf.GetDefaultMaxMembers()
	}

	var room model.Room
	// 房间码冲突时换码重试，软删除的旧房间仍占用房间码
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		room = model.Room{
			Uuid:            "R" + random.GetNowAndLenRandomString(11),
			Name:            req.Name,
			Type:            req.Type,
			CreatorId:       creatorId,
			RoomCode:        random.GetRoomCode(roomConf.GetCodeLength()),
			IsPrivate:       req.IsPrivate,
			MaxParticipants: maxParticipants,
		}

		err = r.repos.Transaction(func(tx *repository.Repositories) error {
			if err := tx.Room.Create(&room); err != nil {
				return err
			}
			if err := tx.Participant.Create(&model.RoomParticipant{
				RoomUuid: room.Uuid,
				UserUuid: creatorId,
				JoinedAt: time.Now(),
			}); err != nil {
				return err
			}
			return tx.Activity.Create(&model.ActivityState{
				RoomUuid: room.Uuid,
				State:    activity_state_enum.Idle,
				Since:    time.Now(),
			})
		})
		if err == nil {
			break
		}
		if !errorx.IsAlreadyExists(err) {
			zap.L().Error("创建房间失败", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}
	if err != nil {
		zap.L().Error("房间码生成冲突次数过多", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return r.buildRoomInfo(&room, creator.DisplayName, 1), nil
}

// buildRoomInfo 组装房间信息响应
func (r *roomService) buildRoomInfo(room *model.Room, creatorName string, count int64) *respond.RoomInfoRespond {
	return &respond.RoomInfoRespond{
		Uuid:             room.Uuid,
		Name:             room.Name,
		Type:             room.Type,
		RoomCode:         room.RoomCode,
		CreatorId:        room.CreatorId,
		CreatorName:      creatorName,
		IsPrivate:        room.IsPrivate,
		MaxParticipants:  room.MaxParticipants,
		ParticipantCount: count,
		CreatedAt:        room.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ListPublicRooms 公开房间列表
// 按创建时间倒序，人数和创建者昵称批量补全
func (r *roomService) ListPublicRooms() ([]respond.RoomInfoRespond, error) {
	rooms, err := r.repos.Room.FindPublicRooms()
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	roomUuids := make([]string, 0, len(rooms))
	creatorIds := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomUuids = append(roomUuids, room.Uuid)
		creatorIds = append(creatorIds, room.CreatorId)
	}

	counts, err := r.repos.Participant.CountByRoomUuids(roomUuids)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	creators, err := r.repos.User.FindByUuids(creatorIds)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	creatorNames := make(map[string]string, len(creators))
	for _, c := range creators {
		creatorNames[c.Uuid] = c.DisplayName
	}

	list := make([]respond.RoomInfoRespond, 0, len(rooms))
	for i := range rooms {
		room := &rooms[i]
		list = append(list, *r.buildRoomInfo(room, creatorNames[room.CreatorId], counts[room.Uuid]))
	}
	return list, nil
}

// GetRoomInfo 获取单个房间信息
func (r *roomService) GetRoomInfo(roomUuid string) (*respond.RoomInfoRespond, error) {
	room, err := r.repos.Room.FindByUuid(roomUuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "房间不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	count, err := r.repos.Participant.CountByRoomUuid(roomUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	creatorName := ""
	if creator, err := r.repos.User.FindByUuid(room.CreatorId); err == nil {
		creatorName = creator.DisplayName
	}
	return r.buildRoomInfo(room, creatorName, count), nil
}

// JoinRoom 加入房间
// 幂等：已在房间内时直接返回当前房间信息
// 满员时返回 CodeRoomFull；成员检查和写入在同一事务内，
// 并发重复加入由 (room_uuid, user_uuid) 唯一索引兜底
func (r *roomService) JoinRoom(userUuid, roomUuid string) (*respond.RoomInfoRespond, error) {
	room, err := r.repos.Room.FindByUuid(roomUuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "房间不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	user, err := r.repos.User.FindByUuid(userUuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	joined := false
	err = r.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := tx.Participant.FindByRoomAndUser(roomUuid, userUuid); err == nil {
			return nil // 已在房间内，幂等返回
		} else if errorx.GetCode(err) != errorx.CodeNotFound {
			return err
		}

		count, err := tx.Participant.CountByRoomUuid(roomUuid)
		if err != nil {
			return err
		}
		if count >= int64(room.MaxParticipants) {
			return errorx.New(errorx.CodeRoomFull, "房间人数已满")
		}

		joined = true
		return tx.Participant.Create(&model.RoomParticipant{
			RoomUuid: roomUuid,
			UserUuid: userUuid,
			JoinedAt: time.Now(),
		})
	})
	if err != nil {
		if errorx.IsAlreadyExists(err) {
			// 并发下唯一索引触发，等同于已在房间内
			joined = false
		} else if errorx.GetCode(err) == errorx.CodeRoomFull {
			return nil, err
		} else {
			zap.L().Error("加入房间失败", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}

	count, err := r.repos.Participant.CountByRoomUuid(roomUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	if joined {
		r.publishMembership(chat.ActionJoined, roomUuid, userUuid, user.DisplayName, count)
	}

	creatorName := ""
	if creator, err := r.repos.User.FindByUuid(room.CreatorId); err == nil {
		creatorName = creator.DisplayName
	}
	return r.buildRoomInfo(room, creatorName, count), nil
}

// JoinByCode 通过房间码加入
// 房间码大小写不敏感，统一转大写后查询
func (r *roomService) JoinByCode(userUuid, roomCode string) (*respond.RoomInfoRespond, error) {
	code := strings.ToUpper(strings.TrimSpace(roomCode))
	room, err := r.repos.Room.FindByCode(code)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "房间码无效")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return r.JoinRoom(userUuid, room.Uuid)
}

// LeaveRoom 离开房间
// 幂等：不在房间内时同样返回成功
func (r *roomService) LeaveRoom(userUuid, roomUuid string) error {
	if _, err := r.repos.Room.FindByUuid(roomUuid); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "房间不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	wasMember := true
	if _, err := r.repos.Participant.FindByRoomAndUser(roomUuid, userUuid); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			wasMember = false
		} else {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
	}

	if err := r.repos.Participant.Delete(roomUuid, userUuid); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if wasMember {
		count, err := r.repos.Participant.CountByRoomUuid(roomUuid)
		if err != nil {
			zap.L().Error(err.Error())
			count = 0
		}
		displayName := ""
		if user, err := r.repos.User.FindByUuid(userUuid); err == nil {
			displayName = user.DisplayName
		}
		r.publishMembership(chat.ActionLeft, roomUuid, userUuid, displayName, count)
	}
	return nil
}

// DismissRoom 解散房间
// 仅房主可操作，房间、成员、消息、活动状态在同一事务内级联清理
// 解散通知在清理前发出，晚到的成员以 HTTP 查询失败感知
func (r *roomService) DismissRoom(ownerUuid, roomUuid string) error {
	room, err := r.repos.Room.FindByUuid(roomUuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "房间不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if room.CreatorId != ownerUuid {
		return errorx.New(errorx.CodeUnauthorized, "只有房主可以解散房间")
	}

	r.publishMembership(chat.ActionDismissed, roomUuid, ownerUuid, "", 0)

	err = r.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Room.SoftDeleteByUuid(roomUuid); err != nil {
			return err
		}
		if err := tx.Participant.DeleteByRoomUuid(roomUuid); err != nil {
			return err
		}
		if err := tx.Message.SoftDeleteByRoomUuid(roomUuid); err != nil {
			return err
		}
		return tx.Activity.SoftDeleteByRoomUuid(roomUuid)
	})
	if err != nil {
		zap.L().Error("解散房间失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	// 异步清理房间相关缓存
	if r.cache != nil {
		r.cache.SubmitTask(func() {
			_ = r.cache.DeleteByPattern(context.Background(), "room_messages_"+roomUuid)
		})
	}
	return nil
}

// GetParticipants 获取房间成员列表
// 按加入时间排序，在线状态优先取 Redis 实时值
func (r *roomService) GetParticipants(roomUuid string) ([]respond.ParticipantRespond, error) {
	if _, err := r.repos.Room.FindByUuid(roomUuid); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "房间不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	participants, err := r.repos.Participant.FindByRoomUuid(roomUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	userUuids := make([]string, 0, len(participants))
	for _, p := range participants {
		userUuids = append(userUuids, p.UserUuid)
	}
	users, err := r.repos.User.FindByUuids(userUuids)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	userMap := make(map[string]*model.UserInfo, len(users))
	for i := range users {
		userMap[users[i].Uuid] = &users[i]
	}

	list := make([]respond.ParticipantRespond, 0, len(participants))
	for _, p := range participants {
		user, ok := userMap[p.UserUuid]
		if !ok {
			continue
		}
		status := user.Status
		if r.cache != nil {
			if live, err := r.cache.Get(context.Background(), myredis.UserStatusKey(user.Uuid)); err == nil && live != "" {
				status = live
			}
		}
		list = append(list, respond.ParticipantRespond{
			UserUuid:    user.Uuid,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Avatar:      user.Avatar,
			Status:      status,
			JoinedAt:    p.JoinedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}

// publishMembership 发布成员变动事件
func (r *roomService) publishMembership(action, roomUuid, userUuid, displayName string, count int64) {
	payload := chat.MembershipPayload{
		UserUuid:         userUuid,
		DisplayName:      displayName,
		ParticipantCount: count,
	}
	if err := chat.PublishEvent(context.Background(), chat.ChannelMembership, action, roomUuid, userUuid, payload); err != nil {
		zap.L().Error("发布成员变动事件失败", zap.Error(err))
	}
}
