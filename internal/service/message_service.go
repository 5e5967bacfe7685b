package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/model"
	"github.com/MoSmeha/UniAssist-FYP/internal/realtime"
	"github.com/MoSmeha/UniAssist-FYP/internal/repository"
)

// ── 消息模块业务错误 ──

var (
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrSelfMessage      = errors.New("cannot send a message to yourself")
)

// 通知文案中的消息预览长度（按字符计）
const messagePreviewRunes = 30

// MessageService 私聊消息业务接口
type MessageService interface {
	Send(ctx context.Context, senderID, receiverID, body string) (*dto.MessageResponse, error)
	// ListWithPeer 与对端的全部历史消息，无会话时返回空列表
	ListWithPeer(ctx context.Context, userID, peerID string) ([]dto.MessageResponse, error)
}

type messageService struct {
	repo   *repository.Repository
	notif  NotificationService
	pusher RealtimePusher
	logger *zap.Logger
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(repo *repository.Repository, notif NotificationService, pusher RealtimePusher, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, notif: notif, pusher: pusher, logger: logger}
}

// Send 发送私聊消息
// 会话按无序用户对惰性创建；消息落库后派生通知并异步推送 newMessage
func (s *messageService) Send(ctx context.Context, senderID, receiverID, body string) (*dto.MessageResponse, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}

	receiver, err := s.repo.User.GetByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	conv, err := s.repo.Conversation.GetByPair(ctx, senderID, receiverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conv = &model.Conversation{ParticipantA: senderID, ParticipantB: receiverID}
		if err := s.repo.Conversation.Create(ctx, conv); err != nil {
			s.logger.Error("创建会话失败",
				zap.String("sender_id", senderID),
				zap.String("receiver_id", receiverID),
				zap.Error(err),
			)
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	msg := &model.Message{
		ConversationID: conv.ConversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Body:           body,
	}
	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("保存消息失败", zap.String("conversation_id", conv.ConversationID), zap.Error(err))
		return nil, err
	}

	s.notifyReceiver(ctx, msg, receiver)

	resp := toMessageResponse(msg)
	return &resp, nil
}

func (s *messageService) ListWithPeer(ctx context.Context, userID, peerID string) ([]dto.MessageResponse, error) {
	conv, err := s.repo.Conversation.GetByPair(ctx, userID, peerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []dto.MessageResponse{}, nil
	} else if err != nil {
		return nil, err
	}

	msgs, err := s.repo.Message.ListByConversation(ctx, conv.ConversationID)
	if err != nil {
		s.logger.Error("查询消息失败", zap.String("conversation_id", conv.ConversationID), zap.Error(err))
		return nil, err
	}

	out := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, toMessageResponse(&msgs[i]))
	}
	return out, nil
}

// notifyReceiver 消息落库后的副作用：创建通知并异步推送消息本体
// 副作用失败不影响已持久化的消息
func (s *messageService) notifyReceiver(ctx context.Context, msg *model.Message, receiver *model.User) {
	sender, err := s.repo.User.GetByID(ctx, msg.SenderID)
	if err != nil {
		s.logger.Error("查询发送者失败", zap.String("sender_id", msg.SenderID), zap.Error(err))
		return
	}

	text := fmt.Sprintf("%s sent you a message: %s", sender.FullName(), previewOf(msg.Body))
	if _, err := s.notif.Notify(ctx, receiver.UserID, msg.SenderID, model.NotificationTypeMessage, text, &msg.MessageID); err != nil {
		// Notify 内部已记日志
		return
	}

	pushed := *msg
	go s.pusher.PushToUser(receiver.UserID, realtime.EventNewMessage, pushed)
}

// previewOf 截取通知文案用的消息预览（rune 安全）
func previewOf(body string) string {
	runes := []rune(body)
	if len(runes) <= messagePreviewRunes {
		return body
	}
	return string(runes[:messagePreviewRunes]) + "..."
}
