package model

// User 用户表 — 对应 users
//
// 角色采用带标签变体建模：role 为判别字段，Major 仅学生有效，
// Title 仅教职工（teacher/admin）有效；读取角色字段处必须按 role 穷举分支
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	UniID        string  `gorm:"column:uni_id;type:varchar(20);not null"        json:"uni_id"`
	FirstName    string  `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName     string  `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Gender       string  `gorm:"type:varchar(10);not null"                      json:"gender"`
	Role         string  `gorm:"type:varchar(20);not null"                      json:"role"`
	Department   string  `gorm:"type:varchar(100);not null"                     json:"department"`
	Major        *string `gorm:"type:varchar(100)"                              json:"major,omitempty"`
	Title        *string `gorm:"type:varchar(100)"                              json:"title,omitempty"`
	ProfilePic   string  `gorm:"type:text;not null;default:''"                  json:"profile_pic"`
	BaseModel

	// 关联
	Schedule []ScheduleEntry `gorm:"foreignKey:UserID;references:UserID" json:"schedule,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// FullName 拼接显示名（通知文案用）
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
