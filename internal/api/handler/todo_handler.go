package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/service"
	"github.com/MoSmeha/UniAssist-FYP/pkg/response"
)

// TodoHandler 待办 HTTP 处理器
type TodoHandler struct {
	todoSvc service.TodoService
}

// NewTodoHandler 创建 TodoHandler
func NewTodoHandler(todoSvc service.TodoService) *TodoHandler {
	return &TodoHandler{todoSvc: todoSvc}
}

// Create 创建待办
// POST /api/v1/todos
func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.todoSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// List 当前用户全部待办
// GET /api/v1/todos
func (h *TodoHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.todoSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 部分更新待办（nil 字段不修改）
// PUT /api/v1/todos/:id
func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.todoSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			response.NotFound(c, 13001, "todo not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除待办
// DELETE /api/v1/todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.todoSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			response.NotFound(c, 13001, "todo not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// CheckReminders 提醒扫描（幂等，可由客户端轮询触发）
// POST /api/v1/todos/check-reminders
func (h *TodoHandler) CheckReminders(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sent, err := h.todoSvc.CheckReminders(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dto.ReminderCheckResponse{RemindersSent: sent})
}
