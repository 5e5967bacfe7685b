package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MoSmeha/UniAssist-FYP/internal/dto"
	"github.com/MoSmeha/UniAssist-FYP/internal/model"
	"github.com/MoSmeha/UniAssist-FYP/internal/repository"
)

// ── 课表模块业务错误 ──

var ErrUnsupportedExportFormat = errors.New("unsupported export format")

// 导出格式
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatICS  = "ics"
)

// ExportResult 课表导出产物
type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ScheduleService 周课表业务接口
type ScheduleService interface {
	Get(ctx context.Context, userID string) ([]dto.ScheduleEntryResponse, error)
	// Update 整表替换
	Update(ctx context.Context, userID string, req *dto.UpdateScheduleRequest) ([]dto.ScheduleEntryResponse, error)
	Export(ctx context.Context, userID, format string) (*ExportResult, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

func (s *scheduleService) Get(ctx context.Context, userID string) ([]dto.ScheduleEntryResponse, error) {
	entries, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询课表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toScheduleEntryResponses(entries), nil
}

func (s *scheduleService) Update(ctx context.Context, userID string, req *dto.UpdateScheduleRequest) ([]dto.ScheduleEntryResponse, error) {
	entries := make([]model.ScheduleEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, model.ScheduleEntry{
			UserID:    userID,
			Day:       e.Day,
			Subject:   e.Subject,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Mode:      e.Mode,
			Room:      e.Room,
		})
	}

	if err := s.repo.Schedule.ReplaceForUser(ctx, userID, entries); err != nil {
		s.logger.Error("替换课表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	saved, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toScheduleEntryResponses(saved), nil
}

func (s *scheduleService) Export(ctx context.Context, userID, format string) (*ExportResult, error) {
	entries, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询课表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	switch format {
	case ExportFormatXLSX:
		return exportXLSX(entries)
	case ExportFormatICS:
		return exportICS(entries), nil
	default:
		return nil, ErrUnsupportedExportFormat
	}
}

// exportXLSX 导出为 Excel 工作簿，一行一条课表条目
func exportXLSX(entries []model.ScheduleEntry) (*ExportResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Schedule"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Day", "Subject", "Start", "End", "Mode", "Room"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, e := range entries {
		values := []interface{}{e.Day, e.Subject, e.StartTime, e.EndTime, e.Mode, e.Room}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Data:        buf.Bytes(),
		Filename:    "schedule.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

// exportICS 导出为 iCalendar，每条目一个按周重复的事件
func exportICS(entries []model.ScheduleEntry) *ExportResult {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//UniAssist//Schedule Export//EN")

	now := time.Now()
	for _, e := range entries {
		start := nextOccurrence(now, e.Day, e.StartTime)
		end := nextOccurrence(now, e.Day, e.EndTime)

		ev := cal.AddEvent(fmt.Sprintf("%s@uniassist", e.EntryID))
		ev.SetCreatedTime(now)
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(e.Subject)
		ev.SetLocation(e.Room)
		ev.SetDescription(fmt.Sprintf("Mode: %s", e.Mode))
		ev.AddRrule("FREQ=WEEKLY")
	}

	return &ExportResult{
		Data:        []byte(cal.Serialize()),
		Filename:    "schedule.ics",
		ContentType: "text/calendar",
	}
}

// nextOccurrence 从 ref 起（含当日）下一个指定星期的 "HH:mm" 时刻
func nextOccurrence(ref time.Time, day, clock string) time.Time {
	weekday := weekdayOf(day)
	offset := (int(weekday) - int(ref.Weekday()) + 7) % 7

	t, err := time.Parse("15:04", clock)
	if err != nil {
		t = time.Time{}
	}

	date := ref.AddDate(0, 0, offset)
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location())
}

func weekdayOf(day string) time.Weekday {
	switch day {
	case "Monday":
		return time.Monday
	case "Tuesday":
		return time.Tuesday
	case "Wednesday":
		return time.Wednesday
	case "Thursday":
		return time.Thursday
	case "Friday":
		return time.Friday
	case "Saturday":
		return time.Saturday
	default:
		return time.Sunday
	}
}

func toScheduleEntryResponses(entries []model.ScheduleEntry) []dto.ScheduleEntryResponse {
	out := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toScheduleEntryResponse(&entries[i]))
	}
	return out
}
