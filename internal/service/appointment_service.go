package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/model"
	"github.com/MoSmeha/UniAssist-FYP/internal/repository"
)

// ── 预约模块业务错误 ──

var (
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrNotTeacher      = errors.New("appointments can only be booked with teachers")
	ErrSelfAppointment = errors.New("cannot book an appointment with yourself")
)

// AppointmentService 预约业务接口
// 状态机只实现 无 → pending 一条转移，确认 / 取消不在范围内
type AppointmentService interface {
	Book(ctx context.Context, studentID string, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.AppointmentResponse, error)
}

type appointmentService struct {
	repo   *repository.Repository
	notif  NotificationService
	logger *zap.Logger
}

// NewAppointmentService 创建 AppointmentService 实例
func NewAppointmentService(repo *repository.Repository, notif NotificationService, logger *zap.Logger) AppointmentService {
	return &appointmentService{repo: repo, notif: notif, logger: logger}
}

// Book 预约教师，成功后通知教师
func (s *appointmentService) Book(ctx context.Context, studentID string, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if studentID == req.TeacherID {
		return nil, ErrSelfAppointment
	}

	teacher, err := s.repo.User.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	if teacher.Role != model.RoleTeacher {
		return nil, ErrNotTeacher
	}

	appt := &model.Appointment{
		StudentID: studentID,
		TeacherID: req.TeacherID,
		Date:      req.Date,
		Reason:    req.Reason,
		Status:    model.AppointmentStatusPending,
	}
	if err := s.repo.Appointment.Create(ctx, appt); err != nil {
		s.logger.Error("创建预约失败",
			zap.String("student_id", studentID),
			zap.String("teacher_id", req.TeacherID),
			zap.Error(err),
		)
		return nil, err
	}

	if student, err := s.repo.User.GetByID(ctx, studentID); err == nil {
		appt.Student = student
		text := fmt.Sprintf("%s requested an appointment on %s", student.FullName(), appt.Date.UTC().Format(timeLayout))
		s.notif.Notify(ctx, teacher.UserID, studentID, model.NotificationTypeAppointment, text, &appt.AppointmentID)
	}
	appt.Teacher = teacher

	resp := toAppointmentResponse(appt)
	return &resp, nil
}

func (s *appointmentService) ListMine(ctx context.Context, userID string) ([]dto.AppointmentResponse, error) {
	appts, err := s.repo.Appointment.ListByParticipant(ctx, userID)
	if err != nil {
		s.logger.Error("查询预约失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	out := make([]dto.AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentResponse(&appts[i]))
	}
	return out, nil
}
