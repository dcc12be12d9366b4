package repository

import (
	"gorm.io/gorm"

	"echoverse_server/internal/model"
	"echoverse_server/pkg/enum/room/room_status_enum"
)

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间 Repository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// FindByUuid 根据 UUID 查找房间
func (r *roomRepository) FindByUuid(uuid string) (*model.Room, error) {
	var room model.Room
	if err := r.db.Where("uuid = ?", uuid).First(&room).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间 uuid=%s", uuid)
	}
	return &room, nil
}

// FindByCode 根据房间码查找房间，房间码入库时已统一为大写
func (r *roomRepository) FindByCode(code string) (*model.Room, error) {
	var room model.Room
	if err := r.db.Where("room_code = ? AND status = ?", code, room_status_enum.NORMAL).First(&room).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间 code=%s", code)
	}
	return &room, nil
}

// FindPublicRooms 查询公开房间列表，按创建时间倒序
func (r *roomRepository) FindPublicRooms() ([]model.Room, error) {
	var rooms []model.Room
	if err := r.db.Where("is_private = ? AND status = ?", false, room_status_enum.NORMAL).
		Order("created_at DESC").Find(&rooms).Error; err != nil {
		return nil, wrapDBError(err, "查询公开房间列表")
	}
	return rooms, nil
}

// FindByCreatorId 查询用户创建的房间
func (r *roomRepository) FindByCreatorId(creatorId string) ([]model.Room, error) {
	var rooms []model.Room
	if err := r.db.Where("creator_id = ? AND status = ?", creatorId, room_status_enum.NORMAL).
		Order("created_at DESC").Find(&rooms).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户创建的房间 creatorId=%s", creatorId)
	}
	return rooms, nil
}

// Create 创建房间
func (r *roomRepository) Create(room *model.Room) error {
	if err := r.db.Create(room).Error; err != nil {
		return wrapDBError(err, "创建房间")
	}
	return nil
}

// Update 更新房间
func (r *roomRepository) Update(room *model.Room) error {
	if err := r.db.Save(room).Error; err != nil {
		return wrapDBErrorf(err, "更新房间 uuid=%s", room.Uuid)
	}
	return nil
}

// SoftDeleteByUuid 解散房间，标记状态并软删除
func (r *roomRepository) SoftDeleteByUuid(uuid string) error {
	if err := r.db.Model(&model.Room{}).Where("uuid = ?", uuid).
		Update("status", room_status_enum.DISMISSED).Error; err != nil {
		return wrapDBErrorf(err, "解散房间 uuid=%s", uuid)
	}
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Room{}).Error; err != nil {
		return wrapDBErrorf(err, "删除房间 uuid=%s", uuid)
	}
	return nil
}
