package dto

import "time"

// ── 预约模块 DTO ──

// BookAppointmentRequest 预约请求
type BookAppointmentRequest struct {
	TeacherID string    `json:"teacher_id" binding:"required,uuid"`
	Date      time.Time `json:"date"       binding:"required"`
	Reason    string    `json:"reason"     binding:"required,max=2000"`
}

// AppointmentResponse 预约响应
type AppointmentResponse struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	TeacherID   string `json:"teacher_id"`
	StudentName string `json:"student_name,omitempty"`
	TeacherName string `json:"teacher_name,omitempty"`
	Date        string `json:"date"`
	Reason      string `json:"reason"`
	Status      string `json:"status"` // pending | confirmed | cancelled
	CreatedAt   string `json:"created_at"`
}
