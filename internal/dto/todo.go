package dto

import "time"

// ── 待办模块 DTO ──

// CreateTodoRequest 创建待办请求
type CreateTodoRequest struct {
	Title       string    `json:"title"       binding:"required,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	DueDate     time.Time `json:"due_date"    binding:"required"`
	StartTime   *string   `json:"start_time"  binding:"omitempty,len=5"`
	EndTime     *string   `json:"end_time"    binding:"omitempty,len=5"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"    binding:"required,oneof=Top Moderate Low"`
}

// UpdateTodoRequest 更新待办请求（字段均可选，nil 表示不修改）
type UpdateTodoRequest struct {
	Title       *string    `json:"title"       binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
	StartTime   *string    `json:"start_time"  binding:"omitempty,len=5"`
	EndTime     *string    `json:"end_time"    binding:"omitempty,len=5"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority"    binding:"omitempty,oneof=Top Moderate Low"`
}

// TodoResponse 待办响应
type TodoResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	Completed   bool    `json:"completed"`
	Priority    string  `json:"priority"`
	CreatedAt   string  `json:"created_at"`
}

// ReminderCheckResponse 提醒扫描结果
type ReminderCheckResponse struct {
	RemindersSent int `json:"reminders_sent"`
}
