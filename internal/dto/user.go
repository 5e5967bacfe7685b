package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Role string `form:"role" binding:"omitempty,oneof=student teacher admin"`
}

// UserResponse 用户信息响应（脱敏，不含密码哈希）
type UserResponse struct {
	ID         string                  `json:"id"`
	UniID      string                  `json:"uni_id"`
	FirstName  string                  `json:"first_name"`
	LastName   string                  `json:"last_name"`
	Email      string                  `json:"email"`
	Gender     string                  `json:"gender"`
	Role       string                  `json:"role"`
	Department string                  `json:"department"`
	Major      string                  `json:"major,omitempty"`
	Title      string                  `json:"title,omitempty"`
	ProfilePic string                  `json:"profile_pic"`
	Schedule   []ScheduleEntryResponse `json:"schedule,omitempty"`
}
