package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/model"
)

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByRecipient(ctx context.Context, userID string) ([]model.Notification, error)
	// MarkRead 仅更新属于 userID 的通知，返回命中行数
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)
	// ExistingRelatedIDs 提醒去重：返回 (收件人, 类型) 下已有通知的 related_id 集合
	ExistingRelatedIDs(ctx context.Context, userID, typ string, relatedIDs []string) (map[string]bool, error)
	DeleteByRelatedID(ctx context.Context, relatedID string) error
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, userID string) ([]model.Notification, error) {
	var ns []model.Notification
	err := r.db.WithContext(ctx).
		Preload("From").
		Where("to_user = ?", userID).
		Order("created_at DESC").
		Find(&ns).Error
	if err != nil {
		return nil, err
	}
	return ns, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id IN ? AND to_user = ?", ids, userID).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) ExistingRelatedIDs(ctx context.Context, userID, typ string, relatedIDs []string) (map[string]bool, error) {
	if len(relatedIDs) == 0 {
		return map[string]bool{}, nil
	}

	var existing []string
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("to_user = ? AND type = ? AND related_id IN ?", userID, typ, relatedIDs).
		Pluck("related_id", &existing).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	return seen, nil
}

func (r *notificationRepo) DeleteByRelatedID(ctx context.Context, relatedID string) error {
	return r.db.WithContext(ctx).
		Where("related_id = ?", relatedID).
		Delete(&model.Notification{}).Error
}
