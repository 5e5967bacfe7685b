package model

import "time"

// 公告受众选择器判别值
const (
	AnnouncementTypeMajor   = "major"
	AnnouncementTypeSubject = "subject"
)

// Announcement 公告表 — 对应 announcements
// announcement_type 为判别字段：major 公告定向专业，subject 公告定向课程科目，二者互斥
type Announcement struct {
	AnnouncementID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	SenderID         string    `gorm:"type:uuid;not null"                             json:"sender_id"`
	Title            string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Content          string    `gorm:"type:text;not null"                             json:"content"`
	AnnouncementType string    `gorm:"type:varchar(10);not null"                      json:"announcement_type"`
	TargetMajor      *string   `gorm:"type:varchar(100)"                              json:"target_major,omitempty"`
	TargetSubject    *string   `gorm:"type:varchar(100)"                              json:"target_subject,omitempty"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Sender *User `gorm:"foreignKey:SenderID;references:UserID" json:"sender,omitempty"`
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }
