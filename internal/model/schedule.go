package model

// ScheduleEntry 周课表条目 — 对应 schedule_entries
// 原门户将课表内嵌在用户文档中，这里拆为独立表以支持按科目反查受众
type ScheduleEntry struct {
	EntryID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	UserID    string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Day       string `gorm:"type:varchar(10);not null"                      json:"day"`     // Monday … Saturday
	Subject   string `gorm:"type:varchar(100);not null"                     json:"subject"`
	StartTime string `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:mm"
	EndTime   string `gorm:"type:varchar(5);not null"                       json:"end_time"`   // "HH:mm"
	Mode      string `gorm:"type:varchar(10);not null"                      json:"mode"`       // campus | online
	Room      string `gorm:"type:varchar(50);not null"                      json:"room"`
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// ── 课表枚举 ──

// ScheduleDays 允许的星期值（周日无课）
var ScheduleDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ScheduleModes 授课方式
var ScheduleModes = []string{"campus", "online"}
