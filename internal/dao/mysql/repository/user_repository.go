package repository

import (
	"gorm.io/gorm"

	"echoverse_server/internal/model"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 根据 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(username string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 username=%s", username)
	}
	return &user, nil
}

// FindByUuids 批量根据 UUID 查找用户
func (r *userRepository) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	if len(uuids) == 0 {
		return []model.UserInfo{}, nil
	}
	var users []model.UserInfo
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户")
	}
	return users, nil
}

// Create 创建新用户
func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

// UpdateUserInfo 更新用户信息
func (r *userRepository) UpdateUserInfo(user *model.UserInfo) error {
	if err := r.db.Save(user).Error; err != nil {
		return wrapDBErrorf(err, "更新用户 uuid=%s", user.Uuid)
	}
	return nil
}

// UpdateStatus 更新用户在线状态
func (r *userRepository) UpdateStatus(uuid string, status string) error {
	if err := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新用户状态 uuid=%s", uuid)
	}
	return nil
}

// CountRoomsCreated 统计用户创建的房间数（用于个人主页统计）
func (r *userRepository) CountRoomsCreated(uuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Room{}).Where("creator_id = ?", uuid).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计用户创建的房间数 uuid=%s", uuid)
	}
	return count, nil
}
