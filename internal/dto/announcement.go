package dto

// ── 公告模块 DTO ──

// CreateAnnouncementRequest 创建公告请求
// announcement_type 为判别字段：major 必填 target_major，subject 必填 target_subject
type CreateAnnouncementRequest struct {
	Title            string `json:"title"             binding:"required,max=200"`
	Content          string `json:"content"           binding:"required"`
	AnnouncementType string `json:"announcement_type" binding:"required,oneof=major subject"`
	TargetMajor      string `json:"target_major"      binding:"omitempty,max=100"`
	TargetSubject    string `json:"target_subject"    binding:"omitempty,max=100"`
}

// AnnouncementResponse 公告响应
type AnnouncementResponse struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Content          string          `json:"content"`
	AnnouncementType string          `json:"announcement_type"`
	TargetMajor      string          `json:"target_major,omitempty"`
	TargetSubject    string          `json:"target_subject,omitempty"`
	Sender           *SenderResponse `json:"sender,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

// SenderResponse 公告发送者简要信息
type SenderResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department"`
	ProfilePic string `json:"profile_pic"`
}
