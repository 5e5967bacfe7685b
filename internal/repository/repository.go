package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Schedule     ScheduleRepository
	Conversation ConversationRepository
	Message      MessageRepository
	Todo         TodoRepository
	Announcement AnnouncementRepository
	Appointment  AppointmentRepository
	Notification NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Schedule:     NewScheduleRepo(db),
		Conversation: NewConversationRepo(db),
		Message:      NewMessageRepo(db),
		Todo:         NewTodoRepo(db),
		Announcement: NewAnnouncementRepo(db),
		Appointment:  NewAppointmentRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
