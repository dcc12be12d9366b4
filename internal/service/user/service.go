// Package user 实现用户相关业务逻辑
// 包含注册、登录、令牌刷新、个人资料和在线状态管理
package user

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"echoverse_server/internal/dao/mysql/repository"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/internal/dto/request"
	"echoverse_server/internal/dto/respond"
	"echoverse_server/internal/model"
	"echoverse_server/pkg/constants"
	"echoverse_server/pkg/enum/friend/friend_status_enum"
	"echoverse_server/pkg/enum/user/presence_enum"
	"echoverse_server/pkg/errorx"
	"echoverse_server/pkg/util/jwt"
	"echoverse_server/pkg/util/random"
)

// userInfoService 用户业务逻辑实现
// 通过构造函数注入 Repository 和缓存依赖
type userInfoService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewUserService 构造函数，注入所有依赖
func NewUserService(repos *repository.Repositories, cache myredis.AsyncCacheService) *userInfoService {
	return &userInfoService{repos: repos, cache: cache}
}

// issueTokens 签发双 Token 并把 Refresh Token ID 写入 Redis 实现单点互踢
func (u *userInfoService) issueTokens(userUuid string) (accessToken, refreshToken string, err error) {
	accessToken, err = jwt.GenerateAccessToken(userUuid)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	refreshToken, tokenID, err := jwt.GenerateRefreshToken(userUuid)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	if u.cache != nil {
		key := myredis.AuthTokenKey(userUuid)
		if err := u.cache.Set(context.Background(), key, tokenID,
			time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS)*time.Hour); err != nil {
			// 不阻塞登录流程，仅记录日志
			zap.L().Error("存储 Token ID 到 Redis 失败", zap.Error(err))
		}
	}
	return accessToken, refreshToken, nil
}

// Register 用户注册
// 用户名全局唯一，注册成功即视为登录
func (u *userInfoService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if _, err := u.repos.User.FindByUsername(req.Username); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "用户名已被占用")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}
	newUser := model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(11),
		Username:    req.Username,
		DisplayName: displayName,
		Email:       req.Email,
		RawPassword: req.Password, // BeforeSave Hook 中加密
		Status:      presence_enum.ONLINE,
	}
	if err := u.repos.User.Create(&newUser); err != nil {
		if errorx.IsAlreadyExists(err) {
			return nil, errorx.New(errorx.CodeUserExist, "用户名已被占用")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	accessToken, refreshToken, err := u.issueTokens(newUser.Uuid)
	if err != nil {
		return nil, err
	}

	return &respond.RegisterRespond{
		Uuid:         newUser.Uuid,
		Username:     newUser.Username,
		DisplayName:  newUser.DisplayName,
		Avatar:       newUser.Avatar,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login 密码登录
func (u *userInfoService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidLogin, "用户名或密码错误")
	}

	accessToken, refreshToken, err := u.issueTokens(user.Uuid)
	if err != nil {
		return nil, err
	}

	loginRsp := &respond.LoginRespond{
		Uuid:         user.Uuid,
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		Email:        user.Email,
		Avatar:       user.Avatar,
		Bio:          user.Bio,
		Status:       user.Status,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	year, month, day := user.CreatedAt.Date()
	loginRsp.CreatedAt = fmt.Sprintf("%d.%d.%d", year, month, day)

	return loginRsp, nil
}

// RefreshToken 用 Refresh Token 换取新的双 Token
// 校验 Redis 中记录的 Token ID，旧会话被新登录挤掉后刷新会失败
func (u *userInfoService) RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 无效或已过期")
	}
	if claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "非法的 Refresh Token")
	}

	if u.cache != nil {
		storedID, err := u.cache.Get(context.Background(), myredis.AuthTokenKey(claims.UserID))
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if storedID != claims.TokenID {
			return nil, errorx.New(errorx.CodeUnauthorized, "会话已失效，请重新登录")
		}
	}

	accessToken, newRefreshToken, err := u.issueTokens(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &respond.RefreshTokenRespond{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetUserInfo 获取个人主页信息
// 创建房间数和好友数实时统计
func (u *userInfoService) GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error) {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	roomsCreated, err := u.repos.User.CountRoomsCreated(uuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	friends, err := u.repos.Friend.FindByUserIdAndStatus(uuid, friend_status_enum.ACCEPTED)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	status := u.liveStatus(uuid, user.Status)

	rsp := &respond.GetUserInfoRespond{
		Uuid:         user.Uuid,
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		Email:        user.Email,
		Avatar:       user.Avatar,
		Bio:          user.Bio,
		Status:       status,
		CreatedAt:    user.CreatedAt.Format("2006-01-02 15:04:05"),
		RoomsCreated: roomsCreated,
		FriendCount:  int64(len(friends)),
	}
	return rsp, nil
}

// liveStatus 取实时在线状态，Redis 未命中回落到落库值
func (u *userInfoService) liveStatus(uuid, fallback string) string {
	if u.cache == nil {
		return fallback
	}
	status, err := u.cache.Get(context.Background(), myredis.UserStatusKey(uuid))
	if err != nil || status == "" {
		return fallback
	}
	return status
}

// UpdateUserInfo 更新个人资料
// 空字段表示不修改
func (u *userInfoService) UpdateUserInfo(uuid string, req request.UpdateUserInfoRequest) error {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := u.repos.User.UpdateUserInfo(user); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// SetStatus 设置在线状态
// 同步写 Redis 保证实时性，数据库落库走异步任务
func (u *userInfoService) SetStatus(uuid string, status string) error {
	if !presence_enum.Valid(status) {
		return errorx.New(errorx.CodeInvalidParam, "无效的在线状态")
	}

	if u.cache != nil {
		ctx := context.Background()
		if err := u.cache.Set(ctx, myredis.UserStatusKey(uuid), status,
			time.Minute*constants.REDIS_TIMEOUT); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if status == presence_enum.OFFLINE {
			if err := u.cache.RemoveFromSet(ctx, myredis.OnlineUsersKey, uuid); err != nil {
				zap.L().Error(err.Error())
			}
		} else {
			if err := u.cache.AddToSet(ctx, myredis.OnlineUsersKey, uuid); err != nil {
				zap.L().Error(err.Error())
			}
		}

		repos := u.repos
		u.cache.SubmitTask(func() {
			if err := repos.User.UpdateStatus(uuid, status); err != nil {
				zap.L().Error("落库在线状态失败", zap.Error(err))
			}
		})
		return nil
	}

	return u.repos.User.UpdateStatus(uuid, status)
}
