package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/service"
	"github.com/MoSmeha/UniAssist-FYP/pkg/response"
)

// AppointmentHandler 预约 HTTP 处理器
type AppointmentHandler struct {
	apptSvc service.AppointmentService
}

// NewAppointmentHandler 创建 AppointmentHandler
func NewAppointmentHandler(apptSvc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptSvc: apptSvc}
}

// Book 预约教师（仅学生）
// POST /api/v1/appointments/book
func (h *AppointmentHandler) Book(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.apptSvc.Book(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfAppointment):
			response.BadRequest(c, 15001, err.Error())
		case errors.Is(err, service.ErrTeacherNotFound):
			response.NotFound(c, 15002, err.Error())
		case errors.Is(err, service.ErrNotTeacher):
			response.BadRequest(c, 15003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// ListMine 当前用户参与的全部预约
// GET /api/v1/appointments/my
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.apptSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
