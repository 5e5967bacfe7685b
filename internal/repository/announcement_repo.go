package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/model"
)

// AnnouncementRepository 公告数据访问接口
type AnnouncementRepository interface {
	Create(ctx context.Context, ann *model.Announcement) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	Delete(ctx context.Context, id string) error
	ListBySender(ctx context.Context, senderID string) ([]model.Announcement, error)
	ListForStudent(ctx context.Context, major string, subjects []string) ([]model.Announcement, error)
}

// announcementRepo AnnouncementRepository 的 GORM 实现
type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo 创建 AnnouncementRepository 实例
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Create(ann).Error
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var ann model.Announcement
	err := r.db.WithContext(ctx).
		Where("announcement_id = ?", id).
		First(&ann).Error
	if err != nil {
		return nil, err
	}
	return &ann, nil
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("announcement_id = ?", id).
		Delete(&model.Announcement{}).Error
}

func (r *announcementRepo) ListBySender(ctx context.Context, senderID string) ([]model.Announcement, error) {
	var anns []model.Announcement
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&anns).Error
	if err != nil {
		return nil, err
	}
	return anns, nil
}

// ListForStudent 学生可见公告：专业匹配，或课表科目命中
// 与原门户的 $or 查询语义一致
func (r *announcementRepo) ListForStudent(ctx context.Context, major string, subjects []string) ([]model.Announcement, error) {
	var anns []model.Announcement
	db := r.db.WithContext(ctx).Preload("Sender")

	if len(subjects) > 0 {
		db = db.Where(
			"(announcement_type = ? AND target_major = ?) OR (announcement_type = ? AND target_subject IN ?)",
			model.AnnouncementTypeMajor, major,
			model.AnnouncementTypeSubject, subjects,
		)
	} else {
		db = db.Where("announcement_type = ? AND target_major = ?", model.AnnouncementTypeMajor, major)
	}

	if err := db.Order("created_at DESC").Find(&anns).Error; err != nil {
		return nil, err
	}
	return anns, nil
}
