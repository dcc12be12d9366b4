// Package repositorytest 提供 Repository 接口的内存实现
// 仅供单元测试使用，不依赖数据库连接
// 语义与 MySQL 实现保持一致：未命中返回 CodeNotFound，唯一约束冲突返回 CodeAlreadyExists
package repositorytest

import (
	"sort"
	"sync"

	"echoverse_server/internal/dao/mysql/repository"
	"echoverse_server/internal/model"
	"echoverse_server/pkg/enum/friend/friend_status_enum"
	"echoverse_server/pkg/enum/room/room_status_enum"
	"echoverse_server/pkg/errorx"
)

// Store 内存数据存储，所有表共用一把锁
type Store struct {
	mu           sync.Mutex
	users        []*model.UserInfo
	rooms        []*model.Room
	participants []*model.RoomParticipant
	messages     []*model.Message
	friends      []*model.FriendLink
	activities   []*model.ActivityState
}

// NewStore 创建空的内存存储
func NewStore() *Store {
	return &Store{}
}

// Repositories 把内存存储包装成 Repositories 聚合
// db 为空，Transaction 会直接执行回调（无回滚能力）
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:        &memUserRepo{s},
		Room:        &memRoomRepo{s},
		Participant: &memParticipantRepo{s},
		Message:     &memMessageRepo{s},
		Friend:      &memFriendRepo{s},
		Activity:    &memActivityRepo{s},
	}
}

// ==================== UserRepository ====================

type memUserRepo struct{ s *Store }

func (r *memUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Uuid == uuid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "用户 %s 不存在", uuid)
}

func (r *memUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "用户名 %s 不存在", username)
}

func (r *memUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[string]bool, len(uuids))
	for _, id := range uuids {
		want[id] = true
	}
	var out []model.UserInfo
	for _, u := range r.s.users {
		if want[u.Uuid] {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Create(user *model.UserInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Uuid == user.Uuid || u.Username == user.Username {
			return errorx.Newf(errorx.CodeAlreadyExists, "用户名 %s 已存在", user.Username)
		}
	}
	// 模拟 GORM 的 BeforeSave Hook（密码加密）
	if err := user.BeforeSave(nil); err != nil {
		return errorx.Wrap(err, errorx.CodeDBError, "创建用户失败")
	}
	cp := *user
	r.s.users = append(r.s.users, &cp)
	return nil
}

func (r *memUserRepo) UpdateUserInfo(user *model.UserInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, u := range r.s.users {
		if u.Uuid == user.Uuid {
			if err := user.BeforeSave(nil); err != nil {
				return errorx.Wrap(err, errorx.CodeDBError, "更新用户失败")
			}
			cp := *user
			r.s.users[i] = &cp
			return nil
		}
	}
	return errorx.Newf(errorx.CodeNotFound, "用户 %s 不存在", user.Uuid)
}

func (r *memUserRepo) UpdateStatus(uuid string, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Uuid == uuid {
			u.Status = status
			return nil
		}
	}
	return errorx.Newf(errorx.CodeNotFound, "用户 %s 不存在", uuid)
}

func (r *memUserRepo) CountRoomsCreated(uuid string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, rm := range r.s.rooms {
		if rm.CreatorId == uuid && rm.Status == room_status_enum.NORMAL {
			n++
		}
	}
	return n, nil
}

// ==================== RoomRepository ====================

type memRoomRepo struct{ s *Store }

func (r *memRoomRepo) FindByUuid(uuid string) (*model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rm := range r.s.rooms {
		if rm.Uuid == uuid && rm.Status == room_status_enum.NORMAL {
			cp := *rm
			return &cp, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "房间 %s 不存在", uuid)
}

func (r *memRoomRepo) FindByCode(code string) (*model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rm := range r.s.rooms {
		if rm.RoomCode == code && rm.Status == room_status_enum.NORMAL {
			cp := *rm
			return &cp, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "房间码 %s 无效", code)
}

func (r *memRoomRepo) FindPublicRooms() ([]model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Room
	for _, rm := range r.s.rooms {
		if !rm.IsPrivate && rm.Status == room_status_enum.NORMAL {
			out = append(out, *rm)
		}
	}
	// 按创建时间倒序，与 MySQL 实现一致
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memRoomRepo) FindByCreatorId(creatorId string) ([]model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Room
	for _, rm := range r.s.rooms {
		if rm.CreatorId == creatorId && rm.Status == room_status_enum.NORMAL {
			out = append(out, *rm)
		}
	}
	return out, nil
}

func (r *memRoomRepo) Create(room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rm := range r.s.rooms {
		if rm.Uuid == room.Uuid || rm.RoomCode == room.RoomCode {
			return errorx.New(errorx.CodeAlreadyExists, "房间已存在")
		}
	}
	cp := *room
	r.s.rooms = append(r.s.rooms, &cp)
	return nil
}

func (r *memRoomRepo) Update(room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, rm := range r.s.rooms {
		if rm.Uuid == room.Uuid {
			cp := *room
			r.s.rooms[i] = &cp
			return nil
		}
	}
	return errorx.Newf(errorx.CodeNotFound, "房间 %s 不存在", room.Uuid)
}

func (r *memRoomRepo) SoftDeleteByUuid(uuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rm := range r.s.rooms {
		if rm.Uuid == uuid {
			rm.Status = room_status_enum.DISMISSED
			return nil
		}
	}
	return errorx.Newf(errorx.CodeNotFound, "房间 %s 不存在", uuid)
}

// ==================== ParticipantRepository ====================

type memParticipantRepo struct{ s *Store }

func (r *memParticipantRepo) FindByRoomAndUser(roomUuid, userUuid string) (*model.RoomParticipant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.participants {
		if p.RoomUuid == roomUuid && p.UserUuid == userUuid {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "成员记录不存在")
}

func (r *memParticipantRepo) FindByRoomUuid(roomUuid string) ([]model.RoomParticipant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.RoomParticipant
	for _, p := range r.s.participants {
		if p.RoomUuid == roomUuid {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (r *memParticipantRepo) FindRoomUuidsByUser(userUuid string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for _, p := range r.s.participants {
		if p.UserUuid == userUuid {
			out = append(out, p.RoomUuid)
		}
	}
	return out, nil
}

func (r *memParticipantRepo) CountByRoomUuid(roomUuid string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.participants {
		if p.RoomUuid == roomUuid {
			n++
		}
	}
	return n, nil
}

func (r *memParticipantRepo) CountByRoomUuids(roomUuids []string) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[string]bool, len(roomUuids))
	for _, id := range roomUuids {
		want[id] = true
	}
	out := make(map[string]int64)
	for _, p := range r.s.participants {
		if want[p.RoomUuid] {
			out[p.RoomUuid]++
		}
	}
	return out, nil
}

func (r *memParticipantRepo) Create(p *model.RoomParticipant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.participants {
		if e.RoomUuid == p.RoomUuid && e.UserUuid == p.UserUuid {
			return errorx.New(errorx.CodeAlreadyExists, "用户已在房间中")
		}
	}
	cp := *p
	r.s.participants = append(r.s.participants, &cp)
	return nil
}

func (r *memParticipantRepo) Delete(roomUuid, userUuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.participants {
		if p.RoomUuid == roomUuid && p.UserUuid == userUuid {
			r.s.participants = append(r.s.participants[:i], r.s.participants[i+1:]...)
			return nil
		}
	}
	// 幂等：记录不存在不报错
	return nil
}

func (r *memParticipantRepo) DeleteByRoomUuid(roomUuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []*model.RoomParticipant
	for _, p := range r.s.participants {
		if p.RoomUuid != roomUuid {
			kept = append(kept, p)
		}
	}
	r.s.participants = kept
	return nil
}

// ==================== MessageRepository ====================

type memMessageRepo struct{ s *Store }

func (r *memMessageRepo) Create(message *model.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *message
	r.s.messages = append(r.s.messages, &cp)
	return nil
}

func (r *memMessageRepo) FindByRoomUuid(roomUuid string, limit int, beforeUuid int64) ([]model.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Message
	for _, m := range r.s.messages {
		if m.RoomUuid != roomUuid {
			continue
		}
		if beforeUuid > 0 && m.Uuid >= beforeUuid {
			continue
		}
		out = append(out, *m)
	}
	// 最新在前
	sort.Slice(out, func(i, j int) bool {
		return out[i].Uuid > out[j].Uuid
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMessageRepo) UpdateStatus(uuid int64, status int8) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.messages {
		if m.Uuid == uuid {
			m.Status = status
			return nil
		}
	}
	return errorx.New(errorx.CodeNotFound, "消息不存在")
}

func (r *memMessageRepo) SoftDeleteByRoomUuid(roomUuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []*model.Message
	for _, m := range r.s.messages {
		if m.RoomUuid != roomUuid {
			kept = append(kept, m)
		}
	}
	r.s.messages = kept
	return nil
}

// ==================== FriendRepository ====================

type memFriendRepo struct{ s *Store }

func (r *memFriendRepo) FindEdge(userId, friendId string) (*model.FriendLink, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.friends {
		if f.UserId == userId && f.FriendId == friendId {
			cp := *f
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "好友关系不存在")
}

func (r *memFriendRepo) FindByUuid(uuid string) (*model.FriendLink, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.friends {
		if f.Uuid == uuid {
			cp := *f
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "好友申请不存在")
}

func (r *memFriendRepo) FindByUserIdAndStatus(userId string, status int8) ([]model.FriendLink, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.FriendLink
	for _, f := range r.s.friends {
		if f.UserId == userId && f.Status == status {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *memFriendRepo) FindPendingForUser(userId string) ([]model.FriendLink, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.FriendLink
	for _, f := range r.s.friends {
		if f.FriendId == userId && f.Status == friend_status_enum.PENDING {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *memFriendRepo) Create(link *model.FriendLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.friends {
		if f.Uuid == link.Uuid {
			return errorx.New(errorx.CodeAlreadyExists, "申请记录已存在")
		}
	}
	cp := *link
	r.s.friends = append(r.s.friends, &cp)
	return nil
}

func (r *memFriendRepo) UpdateStatus(uuid string, status int8) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.friends {
		if f.Uuid == uuid {
			f.Status = status
			return nil
		}
	}
	return errorx.New(errorx.CodeNotFound, "好友申请不存在")
}

func (r *memFriendRepo) Delete(uuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, f := range r.s.friends {
		if f.Uuid == uuid {
			r.s.friends = append(r.s.friends[:i], r.s.friends[i+1:]...)
			return nil
		}
	}
	return nil
}

// ==================== ActivityRepository ====================

type memActivityRepo struct{ s *Store }

func (r *memActivityRepo) FindByRoomUuid(roomUuid string) (*model.ActivityState, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.activities {
		if a.RoomUuid == roomUuid {
			cp := *a
			return &cp, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "房间 %s 的活动状态不存在", roomUuid)
}

func (r *memActivityRepo) Create(state *model.ActivityState) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.activities {
		if a.RoomUuid == state.RoomUuid {
			return errorx.New(errorx.CodeAlreadyExists, "活动状态已存在")
		}
	}
	cp := *state
	r.s.activities = append(r.s.activities, &cp)
	return nil
}

func (r *memActivityRepo) Save(state *model.ActivityState) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, a := range r.s.activities {
		if a.RoomUuid == state.RoomUuid {
			cp := *state
			r.s.activities[i] = &cp
			return nil
		}
	}
	cp := *state
	r.s.activities = append(r.s.activities, &cp)
	return nil
}

func (r *memActivityRepo) SoftDeleteByRoomUuid(roomUuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, a := range r.s.activities {
		if a.RoomUuid == roomUuid {
			r.s.activities = append(r.s.activities[:i], r.s.activities[i+1:]...)
			return nil
		}
	}
	return nil
}
