package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/model"
	"github.com/MoSmeha/UniAssist-FYP/internal/repository"
)

func setupAppointmentService() (AppointmentService, *repository.Repository) {
	repo := newMockRepository()
	notif := NewNotificationService(repo, newMockPusher(), zap.NewNop())
	svc := NewAppointmentService(repo, notif, zap.NewNop())
	return svc, repo
}

func TestBookAppointment(t *testing.T) {
	svc, repo := setupAppointmentService()
	student := seedUser(t, repo, "s1", model.RoleStudent)
	teacher := seedUser(t, repo, "prof", model.RoleTeacher)

	resp, err := svc.Book(context.Background(), student.UserID, &dto.BookAppointmentRequest{
		TeacherID: teacher.UserID,
		Date:      time.Now().Add(48 * time.Hour),
		Reason:    "Project discussion",
	})
	if err != nil {
		t.Fatalf("预约失败: %v", err)
	}
	if resp.Status != model.AppointmentStatusPending {
		t.Fatalf("Status = %q, 期望 pending", resp.Status)
	}

	// 教师收到 appointment_request 通知
	notifs, _ := repo.Notification.ListByRecipient(context.Background(), teacher.UserID)
	if len(notifs) != 1 || notifs[0].Type != model.NotificationTypeAppointment {
		t.Fatalf("教师通知 = %+v, 期望 1 条 appointment_request", notifs)
	}
}

func TestBookAppointmentValidation(t *testing.T) {
	svc, repo := setupAppointmentService()
	student := seedUser(t, repo, "s1", model.RoleStudent)
	peer := seedUser(t, repo, "s2", model.RoleStudent)

	req := func(teacherID string) *dto.BookAppointmentRequest {
		return &dto.BookAppointmentRequest{TeacherID: teacherID, Date: time.Now().Add(time.Hour), Reason: "r"}
	}

	if _, err := svc.Book(context.Background(), student.UserID, req(student.UserID)); !errors.Is(err, ErrSelfAppointment) {
		t.Fatalf("自我预约 err = %v, 期望 ErrSelfAppointment", err)
	}
	if _, err := svc.Book(context.Background(), student.UserID, req("ghost")); !errors.Is(err, ErrTeacherNotFound) {
		t.Fatalf("教师不存在 err = %v, 期望 ErrTeacherNotFound", err)
	}
	// 预约对象必须是教师角色
	if _, err := svc.Book(context.Background(), student.UserID, req(peer.UserID)); !errors.Is(err, ErrNotTeacher) {
		t.Fatalf("预约学生 err = %v, 期望 ErrNotTeacher", err)
	}
}

func TestListMineCoversBothSides(t *testing.T) {
	svc, repo := setupAppointmentService()
	student := seedUser(t, repo, "s1", model.RoleStudent)
	teacher := seedUser(t, repo, "prof", model.RoleTeacher)

	if _, err := svc.Book(context.Background(), student.UserID, &dto.BookAppointmentRequest{
		TeacherID: teacher.UserID,
		Date:      time.Now().Add(time.Hour),
		Reason:    "office hours",
	}); err != nil {
		t.Fatalf("预约失败: %v", err)
	}

	// 学生与教师都能在各自列表中看到这条预约
	for _, userID := range []string{student.UserID, teacher.UserID} {
		appts, err := svc.ListMine(context.Background(), userID)
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if len(appts) != 1 {
			t.Fatalf("用户 %s 预约数 = %d, 期望 1", userID, len(appts))
		}
	}
}
