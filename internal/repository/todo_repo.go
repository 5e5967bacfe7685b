package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/model"
)

// TodoRepository 待办数据访问接口
// 读写均以 (id, ownerID) 为键：非属主访问等同不存在，避免泄露他人待办
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (int64, error)
	ListDueBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Todo, error)
}

// todoRepo TodoRepository 的 GORM 实现
type todoRepo struct {
	db *gorm.DB
}

// NewTodoRepo 创建 TodoRepository 实例
func NewTodoRepo(db *gorm.DB) TodoRepository {
	return &todoRepo{db: db}
}

func (r *todoRepo) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).
		Where("todo_id = ? AND user_id = ?", id, ownerID).
		First(&todo).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("due_date, start_time").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepo) Update(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

// DeleteByIDAndOwner 返回受影响行数；0 行表示不存在或非属主
func (r *todoRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("todo_id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Todo{})
	return res.RowsAffected, res.Error
}

// ListDueBetween 提醒扫描：窗口内到期且未完成的待办
func (r *todoRepo) ListDueBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = FALSE AND due_date >= ? AND due_date <= ?", ownerID, from, to).
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}
