package model

import "time"

// BaseModel 通用审计字段（可变业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── 角色常量 ──

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// ── 通知类型标签 ──
// 自由格式字符串，与前端事件处理约定一致

const (
	NotificationTypeMessage      = "new_message"
	NotificationTypeAnnouncement = "announcement"
	NotificationTypeTodoCreated  = "todo_created"
	NotificationTypeTodoUpdated  = "todo_updated"
	NotificationTypeTodoReminder = "todo_reminder"
	NotificationTypeAppointment  = "appointment_request"
)
