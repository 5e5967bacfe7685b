package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/service"
	"github.com/MoSmeha/UniAssist-FYP/pkg/response"
)

// NotificationHandler 通知 HTTP 处理器
type NotificationHandler struct {
	notifSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notifSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc}
}

// ListMine 当前用户收到的全部通知
// GET /api/v1/notifications/my
func (h *NotificationHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notifSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// MarkRead 批量标记已读（仅作用于属于自己的通知）
// POST /api/v1/notifications/mark-read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	updated, err := h.notifSvc.MarkRead(c.Request.Context(), userID, req.NotificationIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoNotificationsMatched) {
			response.NotFound(c, 16001, "no matching notifications found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, dto.MarkReadResponse{Updated: updated})
}
