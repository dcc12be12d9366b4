// Package activity 实现房间共享活动业务逻辑
// 维护音乐/视频播放的共享状态机：Idle -> Loaded -> Playing <-> Paused
// 所有控制操作先落库再广播，落库失败不发任何事件，
// 订阅端收到的状态一定已持久化
package activity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"echoverse_server/internal/dao/mysql/repository"
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
	"echoverse_server/internal/model"
	"echoverse_server/internal/service/chat"
	"echoverse_server/pkg/enum/activity/activity_state_enum"
	"echoverse_server/pkg/errorx"
)

// activityService 共享活动业务逻辑实现
type activityService struct {
	repos *repository.Repositories
}

// NewActivityService 构造函数
func NewActivityService(repos *repository.Repositories) *activityService {
	return &activityService{repos: repos}
}

// checkParticipant 校验操作者是房间成员
func (a *activityService) checkParticipant(roomUuid, userUuid string) error {
	if _, err := a.repos.Participant.FindByRoomAndUser(roomUuid, userUuid); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUnauthorized, "不是房间成员，无法操作")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// loadState 加载房间活动状态
func (a *activityService) loadState(roomUuid string) (*model.ActivityState, error) {
	state, err := a.repos.Activity.FindByRoomUuid(roomUuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "房间不存在或已解散")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return state, nil
}

// buildRespond 组装活动状态响应
func buildRespond(state *model.ActivityState) *respond.ActivityStateRespond {
	return &respond.ActivityStateRespond{
		RoomUuid:   state.RoomUuid,
		State:      state.State,
		ItemRef:    state.ItemRef,
		PositionMs: state.PositionMs,
		IsPlaying:  state.IsPlaying,
		UpdatedBy:  state.UpdatedBy,
		Since:      state.Since.Format("2006-01-02 15:04:05.000"),
	}
}

// saveAndBroadcast 持久化状态并广播事件
// 落库失败时直接返回错误，不广播
func (a *activityService) saveAndBroadcast(state *model.ActivityState, action string) (*respond.ActivityStateRespond, error) {
	state.Since = time.Now()
	if err := a.repos.Activity.Save(state); err != nil {
		zap.L().Error("保存活动状态失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := buildRespond(state)
	if err := chat.PublishEvent(context.Background(), chat.ChannelActivity, action,
		state.RoomUuid, state.UpdatedBy, rsp); err != nil {
		// 广播失败不回滚状态，订阅端可通过查询接口对齐
		zap.L().Error("广播活动状态失败", zap.Error(err))
	}
	return rsp, nil
}

// GetState 获取房间当前活动状态
func (a *activityService) GetState(roomUuid string) (*respond.ActivityStateRespond, error) {
	state, err := a.loadState(roomUuid)
	if err != nil {
		return nil, err
	}
	return buildRespond(state), nil
}

// SelectItem 选定播放条目
// 任意状态下均可换条目，换条目后回到 Loaded、进度清零
func (a *activityService) SelectItem(userUuid string, req request.ActivitySelectRequest) (*respond.ActivityStateRespond, error) {
	if err := a.checkParticipant(req.RoomUuid, userUuid); err != nil {
		return nil, err
	}
	state, err := a.loadState(req.RoomUuid)
	if err != nil {
		return nil, err
	}

	state.State = activity_state_enum.Loaded
	state.ItemRef = req.ItemRef
	state.PositionMs = 0
	state.IsPlaying = false
	state.UpdatedBy = userUuid
	return a.saveAndBroadcast(state, chat.ActionSelect)
}

// Play 开始或恢复播放
// 仅 Loaded 和 Paused 状态可进入 Playing
func (a *activityService) Play(userUuid string, req request.ActivityPlayRequest) (*respond.ActivityStateRespond, error) {
	if err := a.checkParticipant(req.RoomUuid, userUuid); err != nil {
		return nil, err
	}
	state, err := a.loadState(req.RoomUuid)
	if err != nil {
		return nil, err
	}
	if state.State == activity_state_enum.Idle {
		return nil, errorx.New(errorx.CodeInvalidParam, "尚未选定播放条目")
	}

	state.State = activity_state_enum.Playing
	state.PositionMs = req.PositionMs
	state.IsPlaying = true
	state.UpdatedBy = userUuid
	return a.saveAndBroadcast(state, chat.ActionPlay)
}

// Pause 暂停播放
// 仅 Playing 状态可暂停，重复暂停幂等返回当前状态
func (a *activityService) Pause(userUuid string, req request.ActivityPauseRequest) (*respond.ActivityStateRespond, error) {
	if err := a.checkParticipant(req.RoomUuid, userUuid); err != nil {
		return nil, err
	}
	state, err := a.loadState(req.RoomUuid)
	if err != nil {
		return nil, err
	}
	if state.State == activity_state_enum.Idle || state.State == activity_state_enum.Loaded {
		return nil, errorx.New(errorx.CodeInvalidParam, "当前状态不可暂停")
	}
	if state.State == activity_state_enum.Paused {
		return buildRespond(state), nil
	}

	state.State = activity_state_enum.Paused
	state.PositionMs = req.PositionMs
	state.IsPlaying = false
	state.UpdatedBy = userUuid
	return a.saveAndBroadcast(state, chat.ActionPause)
}

// Seek 跳转进度
// Loaded/Playing/Paused 状态均可，播放与否不变
func (a *activityService) Seek(userUuid string, req request.ActivitySeekRequest) (*respond.ActivityStateRespond, error) {
	if err := a.checkParticipant(req.RoomUuid, userUuid); err != nil {
		return nil, err
	}
	state, err := a.loadState(req.RoomUuid)
	if err != nil {
		return nil, err
	}
	if state.State == activity_state_enum.Idle {
		return nil, errorx.New(errorx.CodeInvalidParam, "尚未选定播放条目")
	}

	state.PositionMs = req.PositionMs
	state.UpdatedBy = userUuid
	return a.saveAndBroadcast(state, chat.ActionSeek)
}
