package handler

import (
	"go.uber.org/zap"

	"github.com/MoSmeha/UniAssist-FYP/internal/realtime"
	"github.com/MoSmeha/UniAssist-FYP/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Message      *MessageHandler
	Todo         *TodoHandler
	Announcement *AnnouncementHandler
	Appointment  *AppointmentHandler
	Notification *NotificationHandler
	Schedule     *ScheduleHandler
	WS           *WSHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Message:      NewMessageHandler(svc.Message),
		Todo:         NewTodoHandler(svc.Todo),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Appointment:  NewAppointmentHandler(svc.Appointment),
		Notification: NewNotificationHandler(svc.Notification),
		Schedule:     NewScheduleHandler(svc.Schedule),
		WS:           NewWSHandler(hub, logger),
	}
}
