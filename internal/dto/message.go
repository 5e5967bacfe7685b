package dto

// ── 消息模块 DTO ──

// SendMessageRequest 发送消息请求（POST /messages/:peerId）
type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// MessageResponse 消息响应
type MessageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	ReceiverID     string `json:"receiver_id"`
	Message        string `json:"message"`
	CreatedAt      string `json:"created_at"`
}
