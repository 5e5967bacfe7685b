package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/model"
)

// ScheduleRepository 课表数据访问接口
type ScheduleRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.ScheduleEntry, error)
	ReplaceForUser(ctx context.Context, userID string, entries []model.ScheduleEntry) error
}

// scheduleRepo ScheduleRepository 的 GORM 实现
type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) ListByUser(ctx context.Context, userID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day, start_time").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceForUser 整表替换：同一事务内先删后插
func (r *scheduleRepo) ReplaceForUser(ctx context.Context, userID string, entries []model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.ScheduleEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].UserID = userID
		}
		return tx.Create(&entries).Error
	})
}
