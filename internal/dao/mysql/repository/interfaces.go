// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"echoverse_server/internal/model"
	"echoverse_server/pkg/errorx"
)

// ==================== 错误包装辅助函数 ====================

// MySQL 唯一约束冲突错误号 (ER_DUP_ENTRY)
const mysqlErrDupEntry = 1062

// isDuplicatedKey 判断是否为唯一约束冲突
// 连接开启 TranslateError 后得到 gorm.ErrDuplicatedKey，
// 未经翻译的裸驱动错误按错误号 1062 兜底识别
func isDuplicatedKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDupEntry
}

// wrapDBError 包装数据库错误
// 根据错误类型返回不同的错误码：
//   - ErrRecordNotFound -> CodeNotFound
//   - 唯一约束冲突 -> CodeAlreadyExists
//   - 其他错误 -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	if isDuplicatedKey(err) {
		return errorx.Wrap(err, errorx.CodeAlreadyExists, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	if isDuplicatedKey(err) {
		return errorx.Wrapf(err, errorx.CodeAlreadyExists, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// UpdateUserInfo 更新用户信息
	UpdateUserInfo(user *model.UserInfo) error
	// UpdateStatus 更新用户在线状态
	UpdateStatus(uuid string, status string) error
	// CountRoomsCreated 统计用户创建的房间数
	CountRoomsCreated(uuid string) (int64, error)
}

// RoomRepository 房间数据访问接口
type RoomRepository interface {
	// FindByUuid 根据 UUID 查找房间
	FindByUuid(uuid string) (*model.Room, error)
	// FindByCode 根据房间码查找房间，调用前需先把输入转为大写
	FindByCode(code string) (*model.Room, error)
	// FindPublicRooms 查找公开房间，按创建时间倒序
	FindPublicRooms() ([]model.Room, error)
	// FindByCreatorId 查找指定用户创建的房间
	FindByCreatorId(creatorId string) ([]model.Room, error)
	// Create 创建房间
	Create(room *model.Room) error
	// Update 更新房间信息
	Update(room *model.Room) error
	// SoftDeleteByUuid 软删除房间
	SoftDeleteByUuid(uuid string) error
}

// ParticipantRepository 房间成员数据访问接口
// "当前人数"一律由 CountByRoomUuid 对成员集合计数得出，不单独维护计数器
type ParticipantRepository interface {
	// FindByRoomAndUser 查找某用户在某房间的成员记录
	FindByRoomAndUser(roomUuid, userUuid string) (*model.RoomParticipant, error)
	// FindByRoomUuid 查找房间所有成员
	FindByRoomUuid(roomUuid string) ([]model.RoomParticipant, error)
	// FindRoomUuidsByUser 查找某用户加入的所有房间
	FindRoomUuidsByUser(userUuid string) ([]string, error)
	// CountByRoomUuid 房间当前人数
	CountByRoomUuid(roomUuid string) (int64, error)
	// CountByRoomUuids 批量统计多个房间的人数
	CountByRoomUuids(roomUuids []string) (map[string]int64, error)
	// Create 添加成员，(room_uuid, user_uuid) 重复时返回 CodeAlreadyExists
	Create(p *model.RoomParticipant) error
	// Delete 移除成员（物理删除，幂等：记录不存在不报错）
	Delete(roomUuid, userUuid string) error
	// DeleteByRoomUuid 移除房间所有成员
	DeleteByRoomUuid(roomUuid string) error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 追加一条消息
	Create(message *model.Message) error
	// FindByRoomUuid 按 (created_at, uuid) 倒序分页查询房间消息
	// beforeUuid 为排他游标，0 表示从最新开始
	FindByRoomUuid(roomUuid string, limit int, beforeUuid int64) ([]model.Message, error)
	// UpdateStatus 更新消息投递状态
	UpdateStatus(uuid int64, status int8) error
	// SoftDeleteByRoomUuid 软删除房间全部消息
	SoftDeleteByRoomUuid(roomUuid string) error
}

// FriendRepository 好友关系数据访问接口
type FriendRepository interface {
	// FindEdge 查找 userId -> friendId 方向的边
	FindEdge(userId, friendId string) (*model.FriendLink, error)
	// FindByUuid 根据边的 UUID 查找
	FindByUuid(uuid string) (*model.FriendLink, error)
	// FindByUserIdAndStatus 查找 userId 发出的指定状态的边
	FindByUserIdAndStatus(userId string, status int8) ([]model.FriendLink, error)
	// FindPendingForUser 查找发给 userId 的待处理申请
	FindPendingForUser(userId string) ([]model.FriendLink, error)
	// Create 创建一条边
	Create(link *model.FriendLink) error
	// UpdateStatus 更新边的状态
	UpdateStatus(uuid string, status int8) error
	// Delete 删除一条边（拒绝申请时使用）
	Delete(uuid string) error
}

// ActivityRepository 房间活动状态数据访问接口
type ActivityRepository interface {
	// FindByRoomUuid 查找房间的活动状态
	FindByRoomUuid(roomUuid string) (*model.ActivityState, error)
	// Create 创建活动状态（随房间创建）
	Create(state *model.ActivityState) error
	// Save 整体保存活动状态
	Save(state *model.ActivityState) error
	// SoftDeleteByRoomUuid 软删除房间的活动状态
	SoftDeleteByRoomUuid(roomUuid string) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db          *gorm.DB
	User        UserRepository
	Room        RoomRepository
	Participant ParticipantRepository
	Message     MessageRepository
	Friend      FriendRepository
	Activity    ActivityRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Room:        NewRoomRepository(db),
		Participant: NewParticipantRepository(db),
		Message:     NewMessageRepository(db),
		Friend:      NewFriendRepository(db),
		Activity:    NewActivityRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	// 没有底层连接时直接执行（内存实现）
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
