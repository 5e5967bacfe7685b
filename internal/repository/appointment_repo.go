package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/model"
)

// AppointmentRepository 预约数据访问接口
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	ListByParticipant(ctx context.Context, userID string) ([]model.Appointment, error)
}

// appointmentRepo AppointmentRepository 的 GORM 实现
type appointmentRepo struct {
	db *gorm.DB
}

// NewAppointmentRepo 创建 AppointmentRepository 实例
func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

// ListByParticipant 当前用户作为学生或教师参与的全部预约，按时间倒序
func (r *appointmentRepo) ListByParticipant(ctx context.Context, userID string) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Teacher").
		Where("student_id = ? OR teacher_id = ?", userID, userID).
		Order("date DESC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}
