package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/service"
	"github.com/MoSmeha/UniAssist-FYP/pkg/response"
)

// MessageHandler 私聊消息 HTTP 处理器
type MessageHandler struct {
	msgSvc service.MessageService
}

// NewMessageHandler 创建 MessageHandler
func NewMessageHandler(msgSvc service.MessageService) *MessageHandler {
	return &MessageHandler{msgSvc: msgSvc}
}

// Send 发送私聊消息
// POST /api/v1/messages/:peerId
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	peerID, ok := peerIDParam(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.msgSvc.Send(c.Request.Context(), userID, peerID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfMessage):
			response.BadRequest(c, 12001, err.Error())
		case errors.Is(err, service.ErrReceiverNotFound):
			response.NotFound(c, 12002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List 与对端的历史消息
// GET /api/v1/messages/:peerId
func (h *MessageHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	peerID, ok := peerIDParam(c)
	if !ok {
		return
	}

	result, err := h.msgSvc.ListWithPeer(c.Request.Context(), userID, peerID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

func peerIDParam(c *gin.Context) (string, bool) {
	peerID := c.Param("peerId")
	if _, err := uuid.Parse(peerID); err != nil {
		response.BadRequest(c, 10001, "invalid peer ID")
		return "", false
	}
	return peerID, true
}
