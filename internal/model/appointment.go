package model

import "time"

// 预约状态
// 状态机刻意不完整：当前只建模 无 → pending 一条转移，
// confirm/cancel 为未实现的扩展点，不要推断补全
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment 预约表 — 对应 appointments
type Appointment struct {
	AppointmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"appointment_id"`
	StudentID     string    `gorm:"type:uuid;not null"                             json:"student_id"`
	TeacherID     string    `gorm:"type:uuid;not null"                             json:"teacher_id"`
	Date          time.Time `gorm:"not null"                                       json:"date"`
	Reason        string    `gorm:"type:text;not null"                             json:"reason"`
	Status        string    `gorm:"type:varchar(10);not null;default:'pending'"    json:"status"`
	BaseModel

	// 关联
	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	Teacher *User `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Appointment) TableName() string { return "appointments" }
