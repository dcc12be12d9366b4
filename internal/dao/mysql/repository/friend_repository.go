package repository

import (
	"gorm.io/gorm"

	"echoverse_server/internal/model"
	"echoverse_server/pkg/enum/friend/friend_status_enum"
)

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository 创建好友关系 Repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// FindEdge 查找方向边，userId 指向 friendId
func (r *friendRepository) FindEdge(userId, friendId string) (*model.FriendLink, error) {
	var link model.FriendLink
	if err := r.db.Where("user_id = ? AND friend_id = ?", userId, friendId).First(&link).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询好友关系 user=%s friend=%s", userId, friendId)
	}
	return &link, nil
}

// FindByUuid 根据 UUID 查找好友申请
func (r *friendRepository) FindByUuid(uuid string) (*model.FriendLink, error) {
	var link model.FriendLink
	if err := r.db.Where("uuid = ?", uuid).First(&link).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询好友申请 uuid=%s", uuid)
	}
	return &link, nil
}

// FindByUserIdAndStatus 查询用户指定状态的好友边
func (r *friendRepository) FindByUserIdAndStatus(userId string, status int8) ([]model.FriendLink, error) {
	var links []model.FriendLink
	if err := r.db.Where("user_id = ? AND status = ?", userId, status).
		Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询好友列表 user=%s", userId)
	}
	return links, nil
}

// FindPendingForUser 查询发给该用户的待处理申请
func (r *friendRepository) FindPendingForUser(userId string) ([]model.FriendLink, error) {
	var links []model.FriendLink
	if err := r.db.Where("friend_id = ? AND status = ?", userId, friend_status_enum.PENDING).
		Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询待处理好友申请 user=%s", userId)
	}
	return links, nil
}

// Create 新增好友边
func (r *friendRepository) Create(link *model.FriendLink) error {
	if err := r.db.Create(link).Error; err != nil {
		return wrapDBError(err, "新增好友关系")
	}
	return nil
}

// UpdateStatus 更新好友边状态
func (r *friendRepository) UpdateStatus(uuid string, status int8) error {
	if err := r.db.Model(&model.FriendLink{}).Where("uuid = ?", uuid).
		Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新好友关系状态 uuid=%s", uuid)
	}
	return nil
}

// Delete 删除好友边
func (r *friendRepository) Delete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.FriendLink{}).Error; err != nil {
		return wrapDBErrorf(err, "删除好友关系 uuid=%s", uuid)
	}
	return nil
}
