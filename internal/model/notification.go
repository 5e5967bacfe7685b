package model

import "time"

// Notification 通知表 — 对应 notifications
//
// 由各领域事件（消息 / 公告 / 待办 / 预约 / 提醒）作为副作用创建；
// 除 read 标记外不更新；关联实体删除时可按 related_id 批量清除
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	ToUser         string    `gorm:"column:to_user;type:uuid;not null;index"        json:"to"`
	FromUser       string    `gorm:"column:from_user;type:uuid;not null"            json:"from"`
	Type           string    `gorm:"type:varchar(50);not null"                      json:"type"`
	Message        string    `gorm:"type:text;not null"                             json:"message"`
	RelatedID      *string   `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	Read           bool      `gorm:"not null;default:false"                         json:"read"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	From *User `gorm:"foreignKey:FromUser;references:UserID" json:"from_user,omitempty"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
