package repository

import (
	"gorm.io/gorm"

	"echoverse_server/internal/model"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 保存消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "保存消息")
	}
	return nil
}

// FindByRoomUuid 分页查询房间消息，按雪花 ID 倒序即最新在前
// beforeUuid 为 0 时从最新开始，否则只取该 ID 之前的消息
func (r *messageRepository) FindByRoomUuid(roomUuid string, limit int, beforeUuid int64) ([]model.Message, error) {
	var messages []model.Message
	query := r.db.Where("room_uuid = ?", roomUuid)
	if beforeUuid > 0 {
		query = query.Where("uuid < ?", beforeUuid)
	}
	if err := query.Order("uuid DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间消息 room=%s", roomUuid)
	}
	return messages, nil
}

// UpdateStatus 更新消息状态
func (r *messageRepository) UpdateStatus(uuid int64, status int8) error {
	if err := r.db.Model(&model.Message{}).Where("uuid = ?", uuid).
		Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新消息状态 uuid=%d", uuid)
	}
	return nil
}

// SoftDeleteByRoomUuid 解散房间时删除全部消息
func (r *messageRepository) SoftDeleteByRoomUuid(roomUuid string) error {
	if err := r.db.Where("room_uuid = ?", roomUuid).Delete(&model.Message{}).Error; err != nil {
		return wrapDBErrorf(err, "删除房间消息 room=%s", roomUuid)
	}
	return nil
}
