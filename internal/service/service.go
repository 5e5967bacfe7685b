package service

import (
	"go.uber.org/zap"

	"github.com/MoSmeha/UniAssist-FYP/config"
	"github.com/MoSmeha/UniAssist-FYP/internal/repository"
	"github.com/MoSmeha/UniAssist-FYP/pkg/jwt"
	"github.com/MoSmeha/UniAssist-FYP/pkg/redis"
)

// RealtimePusher 实时推送接口
// 由 realtime.Hub 实现；推送是尽力而为的单次投递，失败不上抛
type RealtimePusher interface {
	PushToUser(userID, event string, payload interface{})
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Message      MessageService
	Todo         TodoService
	Announcement AnnouncementService
	Appointment  AppointmentService
	Notification NotificationService
	Schedule     ScheduleService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil（Redis 不可用时黑名单功能降级）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	pusher RealtimePusher,
	logger *zap.Logger,
) *Service {
	notif := NewNotificationService(repo, pusher, logger)
	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Message:      NewMessageService(repo, notif, pusher, logger),
		Todo:         NewTodoService(cfg, repo, notif, logger),
		Announcement: NewAnnouncementService(repo, notif, logger),
		Appointment:  NewAppointmentService(repo, notif, logger),
		Notification: notif,
		Schedule:     NewScheduleService(repo, logger),
	}
}
