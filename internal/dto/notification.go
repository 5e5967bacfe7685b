package dto

// ── 通知模块 DTO ──

// MarkReadRequest 批量标记已读请求
type MarkReadRequest struct {
	NotificationIDs []string `json:"notification_ids" binding:"required,min=1,dive,uuid"`
}

// MarkReadResponse 标记已读结果
type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        string          `json:"id"`
	To        string          `json:"to"`
	From      string          `json:"from"`
	FromUser  *SenderResponse `json:"from_user,omitempty"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	RelatedID string          `json:"related_id,omitempty"`
	Read      bool            `json:"read"`
	CreatedAt string          `json:"created_at"`
}
