package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/service"
	"github.com/MoSmeha/UniAssist-FYP/pkg/response"
)

// ScheduleHandler 课表 HTTP 处理器
type ScheduleHandler struct {
	schedSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(schedSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedSvc: schedSvc}
}

// Get 当前用户课表
// GET /api/v1/schedule
func (h *ScheduleHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.schedSvc.Get(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 整表替换课表
// PUT /api/v1/schedule
func (h *ScheduleHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	result, err := h.schedSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Export 课表导出（xlsx / ics），直接以附件流返回
// GET /api/v1/schedule/export?format=xlsx
func (h *ScheduleHandler) Export(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", service.ExportFormatXLSX)
	result, err := h.schedSvc.Export(c.Request.Context(), userID, format)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedExportFormat) {
			response.BadRequest(c, 17001, "unsupported export format")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
