package service

import (
	"time"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/model"
)

// timeLayout 响应中统一的时间格式
const timeLayout = time.RFC3339

// ── Model → DTO 转换 ──

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:         u.UserID,
		UniID:      u.UniID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Gender:     u.Gender,
		Role:       u.Role,
		Department: u.Department,
		ProfilePic: u.ProfilePic,
	}
	// 角色变体字段按 role 穷举展开
	switch u.Role {
	case model.RoleStudent:
		if u.Major != nil {
			resp.Major = *u.Major
		}
	case model.RoleTeacher, model.RoleAdmin:
		if u.Title != nil {
			resp.Title = *u.Title
		}
	}
	for i := range u.Schedule {
		resp.Schedule = append(resp.Schedule, toScheduleEntryResponse(&u.Schedule[i]))
	}
	return resp
}

func toSenderResponse(u *model.User) *dto.SenderResponse {
	resp := &dto.SenderResponse{
		ID:         u.UserID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Department: u.Department,
		ProfilePic: u.ProfilePic,
	}
	if u.Title != nil {
		resp.Title = *u.Title
	}
	return resp
}

func toScheduleEntryResponse(e *model.ScheduleEntry) dto.ScheduleEntryResponse {
	return dto.ScheduleEntryResponse{
		ID:        e.EntryID,
		Day:       e.Day,
		Subject:   e.Subject,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Mode:      e.Mode,
		Room:      e.Room,
	}
}

func toMessageResponse(m *model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:             m.MessageID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ReceiverID:     m.ReceiverID,
		Message:        m.Body,
		CreatedAt:      m.CreatedAt.UTC().Format(timeLayout),
	}
}

func toTodoResponse(t *model.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          t.TodoID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.UTC().Format(timeLayout),
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Completed:   t.Completed,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt.UTC().Format(timeLayout),
	}
}

func toAnnouncementResponse(a *model.Announcement) dto.AnnouncementResponse {
	resp := dto.AnnouncementResponse{
		ID:               a.AnnouncementID,
		Title:            a.Title,
		Content:          a.Content,
		AnnouncementType: a.AnnouncementType,
		CreatedAt:        a.CreatedAt.UTC().Format(timeLayout),
	}
	if a.TargetMajor != nil {
		resp.TargetMajor = *a.TargetMajor
	}
	if a.TargetSubject != nil {
		resp.TargetSubject = *a.TargetSubject
	}
	if a.Sender != nil {
		resp.Sender = toSenderResponse(a.Sender)
	}
	return resp
}

func toAppointmentResponse(a *model.Appointment) dto.AppointmentResponse {
	resp := dto.AppointmentResponse{
		ID:        a.AppointmentID,
		StudentID: a.StudentID,
		TeacherID: a.TeacherID,
		Date:      a.Date.UTC().Format(timeLayout),
		Reason:    a.Reason,
		Status:    a.Status,
		CreatedAt: a.CreatedAt.UTC().Format(timeLayout),
	}
	if a.Student != nil {
		resp.StudentName = a.Student.FullName()
	}
	if a.Teacher != nil {
		resp.TeacherName = a.Teacher.FullName()
	}
	return resp
}
