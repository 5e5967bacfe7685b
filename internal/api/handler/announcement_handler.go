package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/service"
	"github.com/MoSmeha/UniAssist-FYP/pkg/response"
)

// AnnouncementHandler 公告 HTTP 处理器
type AnnouncementHandler struct {
	annSvc service.AnnouncementService
}

// NewAnnouncementHandler 创建 AnnouncementHandler
func NewAnnouncementHandler(annSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{annSvc: annSvc}
}

// Create 发布公告（仅教师）
// POST /api/v1/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.annSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementTarget) {
			response.BadRequest(c, 14001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// ListForStudent 学生公告流
// GET /api/v1/announcements/student
func (h *AnnouncementHandler) ListForStudent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.annSvc.ListForStudent(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotStudent) {
			response.Forbidden(c, 10003, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListMine 教师已发布的公告
// GET /api/v1/announcements/teacher
func (h *AnnouncementHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.annSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除公告（仅发送者）
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.annSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			response.NotFound(c, 14002, "announcement not found")
		case errors.Is(err, service.ErrNotAnnouncementSender):
			response.Forbidden(c, 14003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}
