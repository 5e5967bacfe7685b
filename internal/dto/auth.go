package dto

// ── 认证模块 DTO ──

// SignupRequest 注册请求
// 角色变体字段：student 必填 major，teacher/admin 必填 title（Service 层校验）
type SignupRequest struct {
	UniID      string                 `json:"uni_id"     binding:"required,max=20"`
	FirstName  string                 `json:"first_name" binding:"required,max=50"`
	LastName   string                 `json:"last_name"  binding:"required,max=50"`
	Email      string                 `json:"email"      binding:"required,email"`
	Password   string                 `json:"password"   binding:"required,min=8,max=64"`
	Gender     string                 `json:"gender"     binding:"required,oneof=male female"`
	Role       string                 `json:"role"       binding:"required,oneof=student teacher admin"`
	Department string                 `json:"department" binding:"required,max=100"`
	Major      string                 `json:"major"      binding:"omitempty,max=100"`
	Title      string                 `json:"title"      binding:"omitempty,max=100"`
	Schedule   []ScheduleEntryRequest `json:"schedule"   binding:"omitempty,dive"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	UniID    string `json:"uni_id"   binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 注册 / 登录响应
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
