package repository

import (
	"gorm.io/gorm"

	"echoverse_server/internal/model"
)

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository 创建房间成员 Repository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

// FindByRoomAndUser 查找成员记录
func (r *participantRepository) FindByRoomAndUser(roomUuid, userUuid string) (*model.RoomParticipant, error) {
	var p model.RoomParticipant
	if err := r.db.Where("room_uuid = ? AND user_uuid = ?", roomUuid, userUuid).First(&p).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询成员 room=%s user=%s", roomUuid, userUuid)
	}
	return &p, nil
}

// FindByRoomUuid 查询房间全部成员，按加入时间排序
func (r *participantRepository) FindByRoomUuid(roomUuid string) ([]model.RoomParticipant, error) {
	var list []model.RoomParticipant
	if err := r.db.Where("room_uuid = ?", roomUuid).Order("joined_at ASC").Find(&list).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间成员 room=%s", roomUuid)
	}
	return list, nil
}

// FindRoomUuidsByUser 查询用户已加入的房间 UUID 列表
func (r *participantRepository) FindRoomUuidsByUser(userUuid string) ([]string, error) {
	var uuids []string
	if err := r.db.Model(&model.RoomParticipant{}).Where("user_uuid = ?", userUuid).
		Pluck("room_uuid", &uuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户加入的房间 user=%s", userUuid)
	}
	return uuids, nil
}

// CountByRoomUuid 统计房间在线人数，人数始终实时统计不落库
func (r *participantRepository) CountByRoomUuid(roomUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.RoomParticipant{}).Where("room_uuid = ?", roomUuid).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计房间人数 room=%s", roomUuid)
	}
	return count, nil
}

// CountByRoomUuids 批量统计多个房间的人数
func (r *participantRepository) CountByRoomUuids(roomUuids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(roomUuids))
	if len(roomUuids) == 0 {
		return counts, nil
	}
	type row struct {
		RoomUuid string
		Cnt      int64
	}
	var rows []row
	if err := r.db.Model(&model.RoomParticipant{}).
		Select("room_uuid, COUNT(*) AS cnt").
		Where("room_uuid IN ?", roomUuids).
		Group("room_uuid").
		Scan(&rows).Error; err != nil {
		return nil, wrapDBError(err, "批量统计房间人数")
	}
	for _, it := range rows {
		counts[it.RoomUuid] = it.Cnt
	}
	return counts, nil
}

// Create 新增成员记录
func (r *participantRepository) Create(p *model.RoomParticipant) error {
	if err := r.db.Create(p).Error; err != nil {
		return wrapDBError(err, "新增房间成员")
	}
	return nil
}

// Delete 删除成员记录，记录不存在时不报错
func (r *participantRepository) Delete(roomUuid, userUuid string) error {
	if err := r.db.Where("room_uuid = ? AND user_uuid = ?", roomUuid, userUuid).
		Delete(&model.RoomParticipant{}).Error; err != nil {
		return wrapDBErrorf(err, "删除房间成员 room=%s user=%s", roomUuid, userUuid)
	}
	return nil
}

// DeleteByRoomUuid 解散房间时清理全部成员记录
func (r *participantRepository) DeleteByRoomUuid(roomUuid string) error {
	if err := r.db.Where("room_uuid = ?", roomUuid).Delete(&model.RoomParticipant{}).Error; err != nil {
		return wrapDBErrorf(err, "清理房间成员 room=%s", roomUuid)
	}
	return nil
}
