package repository

import (
	"gorm.io/gorm"

	"echoverse_server/internal/model"
)

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository 创建活动状态 Repository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// FindByRoomUuid 查询房间的活动状态
func (r *activityRepository) FindByRoomUuid(roomUuid string) (*model.ActivityState, error) {
	var state model.ActivityState
	if err := r.db.Where("room_uuid = ?", roomUuid).First(&state).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询活动状态 room=%s", roomUuid)
	}
	return &state, nil
}

// Create 初始化房间活动状态
func (r *activityRepository) Create(state *model.ActivityState) error {
	if err := r.db.Create(state).Error; err != nil {
		return wrapDBError(err, "初始化活动状态")
	}
	return nil
}

// Save 保存活动状态
func (r *activityRepository) Save(state *model.ActivityState) error {
	if err := r.db.Save(state).Error; err != nil {
		return wrapDBErrorf(err, "保存活动状态 room=%s", state.RoomUuid)
	}
	return nil
}

// SoftDeleteByRoomUuid 解散房间时删除活动状态
func (r *activityRepository) SoftDeleteByRoomUuid(roomUuid string) error {
	if err := r.db.Where("room_uuid = ?", roomUuid).Delete(&model.ActivityState{}).Error; err != nil {
		return wrapDBErrorf(err, "删除活动状态 room=%s", roomUuid)
	}
	return nil
}
