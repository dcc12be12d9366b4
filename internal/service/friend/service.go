// Package friend 实现好友关系业务逻辑
// 好友关系用有向边表示，互为好友即两条 ACCEPTED 边
// 接受申请时正向翻转和反向插入在同一事务内完成，不会出现单向好友
package friend

import (
	"context"

	"go.uber.org/zap"

	"echoverse_server/internal/dao/mysql/repository"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
	"echoverse_server/internal/model"
	"echoverse_server/pkg/enum/friend/friend_status_enum"
	"echoverse_server/pkg/errorx"
	"echoverse_server/pkg/util/random"
)

// friendService 好友业务逻辑实现
type friendService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewFriendService 构造函数
func NewFriendService(repos *repository.Repositories, cache myredis.AsyncCacheService) *friendService {
	return &friendService{repos: repos, cache: cache}
}

// SendRequest 发起好友申请
// 已有任意方向的边时拒绝重复申请
func (f *friendService) SendRequest(userUuid string, req request.ApplyFriendRequest) error {
	target, err := f.repos.User.FindByUsername(req.FriendUsername)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if target.Uuid == userUuid {
		return errorx.New(errorx.CodeInvalidParam, "不能添加自己为好友")
	}

	// 正向边：已申请过或已是好友
	if edge, err := f.repos.Friend.FindEdge(userUuid, target.Uuid); err == nil {
		if edge.Status == friend_status_enum.ACCEPTED {
			return errorx.New(errorx.CodeAlreadyExists, "已经是好友")
		}
		return errorx.New(errorx.CodeAlreadyExists, "申请已发送，等待对方处理")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	// 反向边：对方已先发来申请
	if edge, err := f.repos.Friend.FindEdge(target.Uuid, userUuid); err == nil {
		if edge.Status == friend_status_enum.ACCEPTED {
			return errorx.New(errorx.CodeAlreadyExists, "已经是好友")
		}
		return errorx.New(errorx.CodeAlreadyExists, "对方已向你发起申请，请直接处理")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	link := model.FriendLink{
		Uuid:     "F" + random.GetNowAndLenRandomString(11),
		UserId:   userUuid,
		FriendId: target.Uuid,
		Status:   friend_status_enum.PENDING,
		Message:  req.Message,
	}
	if err := f.repos.Friend.Create(&link); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// AcceptRequest 接受好友申请
// 正向边翻转为 ACCEPTED，同时插入反向 ACCEPTED 边，两步同一事务
func (f *friendService) AcceptRequest(userUuid, requestUuid string) error {
	link, err := f.repos.Friend.FindByUuid(requestUuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "好友申请不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if link.FriendId != userUuid {
		return errorx.New(errorx.CodeUnauthorized, "只能处理发给自己的申请")
	}
	if link.Status != friend_status_enum.PENDING {
		return errorx.New(errorx.CodeAlreadyExists, "申请已处理")
	}

	err = f.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Friend.UpdateStatus(link.Uuid, friend_status_enum.ACCEPTED); err != nil {
			return err
		}
		return tx.Friend.Create(&model.FriendLink{
			Uuid:     "F" + random.GetNowAndLenRandomString(11),
			UserId:   link.FriendId,
			FriendId: link.UserId,
			Status:   friend_status_enum.ACCEPTED,
		})
	})
	if err != nil {
		zap.L().Error("接受好友申请失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// DeclineRequest 拒绝好友申请
// 直接删除申请边，对方可再次申请
func (f *friendService) DeclineRequest(userUuid, requestUuid string) error {
	link, err := f.repos.Friend.FindByUuid(requestUuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "好友申请不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if link.FriendId != userUuid {
		return errorx.New(errorx.CodeUnauthorized, "只能处理发给自己的申请")
	}
	if link.Status != friend_status_enum.PENDING {
		return errorx.New(errorx.CodeAlreadyExists, "申请已处理")
	}

	if err := f.repos.Friend.Delete(link.Uuid); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// ListFriends 好友列表
// 在线状态优先取 Redis 实时值
func (f *friendService) ListFriends(userUuid string) ([]respond.FriendRespond, error) {
	links, err := f.repos.Friend.FindByUserIdAndStatus(userUuid, friend_status_enum.ACCEPTED)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	friendUuids := make([]string, 0, len(links))
	for _, link := range links {
		friendUuids = append(friendUuids, link.FriendId)
	}
	users, err := f.repos.User.FindByUuids(friendUuids)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.FriendRespond, 0, len(users))
	for i := range users {
		user := &users[i]
		status := user.Status
		if f.cache != nil {
			if live, err := f.cache.Get(context.Background(), myredis.UserStatusKey(user.Uuid)); err == nil && live != "" {
				status = live
			}
		}
		list = append(list, respond.FriendRespond{
			UserUuid:    user.Uuid,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Avatar:      user.Avatar,
			Status:      status,
		})
	}
	return list, nil
}

// ListPendingRequests 发给我的待处理申请列表
func (f *friendService) ListPendingRequests(userUuid string) ([]respond.FriendRequestRespond, error) {
	links, err := f.repos.Friend.FindPendingForUser(userUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	senderUuids := make([]string, 0, len(links))
	for _, link := range links {
		senderUuids = append(senderUuids, link.UserId)
	}
	senders, err := f.repos.User.FindByUuids(senderUuids)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	senderMap := make(map[string]*model.UserInfo, len(senders))
	for i := range senders {
		senderMap[senders[i].Uuid] = &senders[i]
	}

	list := make([]respond.FriendRequestRespond, 0, len(links))
	for _, link := range links {
		sender, ok := senderMap[link.UserId]
		if !ok {
			continue
		}
		list = append(list, respond.FriendRequestRespond{
			RequestUuid: link.Uuid,
			FromUuid:    sender.Uuid,
			FromName:    sender.DisplayName,
			FromAvatar:  sender.Avatar,
			Message:     link.Message,
			CreatedAt:   link.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}
