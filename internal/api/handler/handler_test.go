package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/MoSmeha/UniAssist-FYP/internal/api/middleware"
	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/model"
	"github.com/MoSmeha/UniAssist-FYP/internal/service"
	"github.com/MoSmeha/UniAssist-FYP/pkg/jwt"
	"github.com/MoSmeha/UniAssist-FYP/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	signupResult *dto.AuthResponse
	signupErr    error
	loginResult  *dto.AuthResponse
	loginErr     error
	logoutErr    error
	meResult     *dto.UserResponse
	meErr        error
}

func (m *mockAuthService) Signup(_ context.Context, _ *dto.SignupRequest) (*dto.AuthResponse, error) {
	return m.signupResult, m.signupErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error { return m.logoutErr }
func (m *mockAuthService) GetMe(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

// ── Mock MessageService ──

type mockMessageService struct {
	sendResult *dto.MessageResponse
	sendErr    error
	listResult []dto.MessageResponse
	listErr    error
}

func (m *mockMessageService) Send(_ context.Context, _, _, _ string) (*dto.MessageResponse, error) {
	return m.sendResult, m.sendErr
}
func (m *mockMessageService) ListWithPeer(_ context.Context, _, _ string) ([]dto.MessageResponse, error) {
	return m.listResult, m.listErr
}

// ── Mock TodoService ──

type mockTodoService struct {
	createResult *dto.TodoResponse
	createErr    error
	listResult   []dto.TodoResponse
	listErr      error
	updateResult *dto.TodoResponse
	updateErr    error
	deleteErr    error
	remindersN   int
	remindersErr error
}

func (m *mockTodoService) Create(_ context.Context, _ string, _ *dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTodoService) List(_ context.Context, _ string) ([]dto.TodoResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTodoService) Update(_ context.Context, _, _ string, _ *dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTodoService) Delete(_ context.Context, _, _ string) error { return m.deleteErr }
func (m *mockTodoService) CheckReminders(_ context.Context, _ string) (int, error) {
	return m.remindersN, m.remindersErr
}

// ── Mock NotificationService ──

type mockNotificationService struct {
	listResult  []dto.NotificationResponse
	listErr     error
	markUpdated int64
	markErr     error
}

func (m *mockNotificationService) Notify(_ context.Context, _, _, _, _ string, _ *string) (*model.Notification, error) {
	return nil, nil
}
func (m *mockNotificationService) NotifyAll(_ context.Context, _ []string, _, _, _ string, _ *string) int {
	return 0
}
func (m *mockNotificationService) ListMine(_ context.Context, _ string) ([]dto.NotificationResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockNotificationService) MarkRead(_ context.Context, _ string, _ []string) (int64, error) {
	return m.markUpdated, m.markErr
}

// ── 测试辅助 ──

// injectIdentity 伪造认证中间件的上下文注入
func injectIdentity(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxRole, role)
		c.Next()
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法 JSON: %v, body=%s", err, w.Body.String())
	}
	return resp
}

// ═══════════════════════════════════════════════════════════
// Tests
// ═══════════════════════════════════════════════════════════

func TestLoginHandler(t *testing.T) {
	mockSvc := &mockAuthService{
		loginResult: &dto.AuthResponse{Token: "jwt-token", User: dto.UserResponse{ID: "user-1"}},
	}
	h := NewAuthHandler(mockSvc)

	engine := gin.New()
	engine.POST("/api/v1/auth/login", h.Login)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{UniID: "S1", Password: "pw"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, 期望 200", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Code != 0 {
		t.Fatalf("code = %d, 期望 0", resp.Code)
	}

	// 凭证错误 → 401 / 11001
	mockSvc.loginResult = nil
	mockSvc.loginErr = service.ErrInvalidCredentials
	w = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{UniID: "S1", Password: "bad"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, 期望 401", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Code != 11001 {
		t.Fatalf("code = %d, 期望 11001", resp.Code)
	}

	// 缺字段 → 400 / 10001
	w = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", map[string]string{"uni_id": "S1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, 期望 400", w.Code)
	}
}

func TestSignupHandlerConflict(t *testing.T) {
	mockSvc := &mockAuthService{signupErr: service.ErrEmailTaken}
	h := NewAuthHandler(mockSvc)

	engine := gin.New()
	engine.POST("/api/v1/auth/signup", h.Signup)

	req := dto.SignupRequest{
		UniID: "S1", FirstName: "A", LastName: "B", Email: "a@b.edu",
		Password: "longenough", Gender: "male", Role: "student",
		Department: "CS", Major: "SE",
	}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signup", req)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, 期望 409", w.Code)
	}
}

func TestTodoHandlerNotFound(t *testing.T) {
	mockSvc := &mockTodoService{updateErr: service.ErrTodoNotFound, deleteErr: service.ErrTodoNotFound}
	h := NewTodoHandler(mockSvc)

	engine := gin.New()
	engine.Use(injectIdentity("user-1", model.RoleStudent))
	engine.PUT("/api/v1/todos/:id", h.Update)
	engine.DELETE("/api/v1/todos/:id", h.Delete)

	w := doJSON(t, engine, http.MethodPut, "/api/v1/todos/nope", map[string]string{"title": "x"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("Update status = %d, 期望 404", w.Code)
	}
	w = doJSON(t, engine, http.MethodDelete, "/api/v1/todos/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Delete status = %d, 期望 404", w.Code)
	}
}

func TestCheckRemindersHandler(t *testing.T) {
	mockSvc := &mockTodoService{remindersN: 2}
	h := NewTodoHandler(mockSvc)

	engine := gin.New()
	engine.Use(injectIdentity("user-1", model.RoleStudent))
	engine.POST("/api/v1/todos/check-reminders", h.CheckReminders)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/todos/check-reminders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, 期望 200", w.Code)
	}

	var resp struct {
		Data dto.ReminderCheckResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.RemindersSent != 2 {
		t.Fatalf("reminders_sent = %d, 期望 2", resp.Data.RemindersSent)
	}
}

func TestMessageHandlerPeerValidation(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{})

	engine := gin.New()
	engine.Use(injectIdentity("user-1", model.RoleStudent))
	engine.POST("/api/v1/messages/:peerId", h.Send)

	// peerId 必须是 UUID
	w := doJSON(t, engine, http.MethodPost, "/api/v1/messages/not-a-uuid", dto.SendMessageRequest{Message: "hi"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, 期望 400", w.Code)
	}
}

func TestMarkReadHandler(t *testing.T) {
	mockSvc := &mockNotificationService{markUpdated: 1}
	h := NewNotificationHandler(mockSvc)

	engine := gin.New()
	engine.Use(injectIdentity("user-1", model.RoleStudent))
	engine.POST("/api/v1/notifications/mark-read", h.MarkRead)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/notifications/mark-read", dto.MarkReadRequest{
		NotificationIDs: []string{"b2f5e7a0-1234-4cde-9f00-aaaaaaaaaaaa"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, 期望 200", w.Code)
	}

	// 零命中 → 404
	mockSvc.markErr = service.ErrNoNotificationsMatched
	w = doJSON(t, engine, http.MethodPost, "/api/v1/notifications/mark-read", dto.MarkReadRequest{
		NotificationIDs: []string{"b2f5e7a0-1234-4cde-9f00-aaaaaaaaaaaa"},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, 期望 404", w.Code)
	}

	// 空列表被绑定校验拒绝
	mockSvc.markErr = nil
	w = doJSON(t, engine, http.MethodPost, "/api/v1/notifications/mark-read", dto.MarkReadRequest{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, 期望 400", w.Code)
	}
}

func TestRoleAuthOnAnnouncements(t *testing.T) {
	h := NewAnnouncementHandler(&mockAnnouncementService{})

	engine := gin.New()
	engine.Use(injectIdentity("user-1", model.RoleStudent))
	engine.POST("/api/v1/announcements", middleware.RoleAuth(model.RoleTeacher), h.Create)

	// 学生调用教师接口 → 403
	w := doJSON(t, engine, http.MethodPost, "/api/v1/announcements", dto.CreateAnnouncementRequest{
		Title: "t", Content: "c", AnnouncementType: "major", TargetMajor: "CS",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, 期望 403", w.Code)
	}
}

// ── Mock AnnouncementService ──

type mockAnnouncementService struct {
	createResult *dto.AnnouncementResponse
	createErr    error
}

func (m *mockAnnouncementService) Create(_ context.Context, _ string, _ *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockAnnouncementService) ListForStudent(_ context.Context, _ string) ([]dto.AnnouncementResponse, error) {
	return nil, nil
}
func (m *mockAnnouncementService) ListMine(_ context.Context, _ string) ([]dto.AnnouncementResponse, error) {
	return nil, nil
}
func (m *mockAnnouncementService) Delete(_ context.Context, _, _ string) error { return nil }
