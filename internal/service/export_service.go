package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/schedule"
)

// ── export module errors ──

var (
	ErrExportNoMembers    = errors.New("project has no members to export")
	ErrExportNoSchedule   = errors.New("project has no meeting schedule configured")
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// ExportService renders download artifacts.
//
// Both exports return a bytes.Buffer plus a suggested filename; the handler
// layer sets the HTTP headers and streams the buffer.
type ExportService interface {
	// ExportMonthGrid renders one project month as an .xlsx sheet:
	// members as rows, days as columns, plus summary columns.
	ExportMonthGrid(ctx context.Context, projectID string, year int, month time.Month) (*bytes.Buffer, string, error)
	// ExportMeetingCalendar renders a project's weekly meeting schedule as an
	// iCalendar file with one recurring event.
	ExportMeetingCalendar(ctx context.Context, projectID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// statusCellText maps a stored status to its short cell code.
var statusCellText = map[string]string{
	model.StatusPresent: "P",
	model.StatusAbsent:  "A",
	model.StatusLate:    "L",
	model.StatusExcused: "E",
	model.StatusHoliday: "H",
	model.StatusWeekend: "-",
}

func (s *exportService) ExportMonthGrid(ctx context.Context, projectID string, year int, month time.Month) (*bytes.Buffer, string, error) {
	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProjectNotFound
		}
		s.logger.Error("lookup project failed", zap.Error(err))
		return nil, "", err
	}

	members, err := s.repo.Project.ListMembers(ctx, projectID)
	if err != nil {
		s.logger.Error("list members failed", zap.Error(err))
		return nil, "", err
	}
	if len(members) == 0 {
		return nil, "", ErrExportNoMembers
	}

	records, err := s.repo.Attendance.ListByProjectMonth(ctx, projectID, year, month)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, "", err
	}

	var sched *model.MeetingSchedule
	mode := schedule.ModeDefault
	if project.MeetingBased {
		mode = schedule.ModeMeeting
		sched = project.MeetingSchedule
	}
	grid := schedule.NewGrid(year, month, mode, sched, false)
	grid.Seed(records)
	days := schedule.MonthDays(year, month, sched)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 24)
	lastDayCol := colName(1 + len(days))
	f.SetColWidth(sheetName, "B", lastDayCol, 4)
	summaryFirst := colName(2 + len(days))
	summaryLast := colName(4 + len(days))
	f.SetColWidth(sheetName, summaryFirst, summaryLast, 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// title row
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — attendance %04d-%02d", project.Name, year, month))
	f.MergeCell(sheetName, "A1", cell(summaryLast, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// header row: member, day numbers, summary columns
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Member")
	for i, d := range days {
		f.SetCellValue(sheetName, cell(colName(1+i), row), d.Day)
	}
	f.SetCellValue(sheetName, cell(colName(1+len(days)), row), "Present")
	f.SetCellValue(sheetName, cell(colName(2+len(days)), row), "Absent")
	f.SetCellValue(sheetName, cell(colName(3+len(days)), row), "Rate")

	row = 3
	for _, m := range members {
		name := m.UserID
		if m.User != nil {
			name = m.User.Name
		}
		f.SetCellValue(sheetName, cell("A", row), name)

		var scheduled, present, absent int
		for i, d := range days {
			status := grid.Status(m.UserID, d.Day)
			text, ok := statusCellText[status]
			if !ok {
				text = "-"
			}
			f.SetCellValue(sheetName, cell(colName(1+i), row), text)

			if !d.Scheduled {
				continue
			}
			scheduled++
			switch status {
			case model.StatusPresent, model.StatusLate:
				present++
			case model.StatusAbsent:
				absent++
			}
		}
		f.SetCellValue(sheetName, cell(colName(1+len(days)), row), present)
		f.SetCellValue(sheetName, cell(colName(2+len(days)), row), absent)
		f.SetCellValue(sheetName, cell(colName(3+len(days)), row),
			fmt.Sprintf("%d%%", attendancePercentage(scheduled, absent)))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s_%04d-%02d.xlsx", sanitizeFilename(project.Name), year, month)
	return buf, filename, nil
}

// byDayCodes maps schedule weekday names to RRULE BYDAY codes.
var byDayCodes = map[string]string{
	"monday":    "MO",
	"tuesday":   "TU",
	"wednesday": "WE",
	"thursday":  "TH",
	"friday":    "FR",
	"saturday":  "SA",
	"sunday":    "SU",
}

func (s *exportService) ExportMeetingCalendar(ctx context.Context, projectID string) (*bytes.Buffer, string, error) {
	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProjectNotFound
		}
		s.logger.Error("lookup project failed", zap.Error(err))
		return nil, "", err
	}
	if !project.MeetingBased || project.MeetingSchedule == nil || len(project.MeetingSchedule.Days) == 0 {
		return nil, "", ErrExportNoSchedule
	}

	sched := project.MeetingSchedule
	var codes []string
	for _, day := range sched.Days {
		if code, ok := byDayCodes[strings.ToLower(day)]; ok {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return nil, "", ErrExportNoSchedule
	}

	hour, minute := 9, 0
	if t, err := time.Parse("15:04", sched.Time); err == nil {
		hour, minute = t.Hour(), t.Minute()
	}

	// anchor the recurrence at the next upcoming scheduled day
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	for !schedule.IsScheduledDay(start.Year(), start.Month(), start.Day(), sched) || start.Before(now) {
		start = start.AddDate(0, 0, 1)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Codebility//Portal//EN")

	event := cal.AddEvent(fmt.Sprintf("meeting-%s@codebility", project.ProjectID))
	event.SetCreatedTime(now)
	event.SetDtStampTime(now)
	event.SetStartAt(start)
	event.SetEndAt(start.Add(time.Hour))
	event.SetSummary(fmt.Sprintf("%s team meeting", project.Name))
	if project.Description != "" {
		event.SetDescription(project.Description)
	}
	event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", strings.Join(codes, ",")))

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("meetings_%s.ics", sanitizeFilename(project.Name))
	return buf, filename, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
}
