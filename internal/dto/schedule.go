package dto

// ── 课表模块 DTO ──

// ScheduleEntryRequest 单条课表条目
type ScheduleEntryRequest struct {
	Day       string `json:"day"        binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	Subject   string `json:"subject"    binding:"required,max=100"`
	StartTime string `json:"start_time" binding:"required,len=5"` // "HH:mm"
	EndTime   string `json:"end_time"   binding:"required,len=5"` // "HH:mm"
	Mode      string `json:"mode"       binding:"required,oneof=campus online"`
	Room      string `json:"room"       binding:"required,max=50"`
}

// UpdateScheduleRequest 整表替换请求
type UpdateScheduleRequest struct {
	Entries []ScheduleEntryRequest `json:"entries" binding:"required,dive"`
}

// ScheduleEntryResponse 课表条目响应
type ScheduleEntryResponse struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	Subject   string `json:"subject"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Mode      string `json:"mode"`
	Room      string `json:"room"`
}
