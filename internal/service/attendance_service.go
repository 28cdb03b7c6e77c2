package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/config"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/schedule"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/redis"
)

// ── attendance module errors ──

var (
	ErrInvalidDateKey = errors.New("invalid date: must be YYYY-MM-DD")
	ErrPointsNotFound = errors.New("no points recorded for user")
)

// AttendanceService is the attendance business interface.
type AttendanceService interface {
	// GetGrid seeds the month grid from stored rows plus classifier defaults.
	GetGrid(ctx context.Context, projectID string, year int, month time.Month) (*dto.GridResponse, error)
	// BulkSave upserts a batch of records. Per-record failures are collected,
	// not fatal; already-written rows are never rolled back.
	BulkSave(ctx context.Context, projectID string, req *dto.BulkSaveRequest, caller Caller) (*dto.BulkSaveResponse, error)
	// GetPoints reads the derived aggregate; it never recomputes in-process.
	GetPoints(ctx context.Context, userID string) (*dto.PointsResponse, error)
	// RepairPoints recounts qualifying rows and overwrites the aggregate.
	// Safe to run repeatedly; always converges to count * PointsPerDay.
	RepairPoints(ctx context.Context, userID string, caller Caller) (*dto.RepairPointsResponse, error)
	// MonthSummary returns per-member percentages, cached in Redis.
	MonthSummary(ctx context.Context, projectID string, year int, month time.Month) (*dto.MonthSummaryResponse, error)
}

type attendanceService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) AttendanceService {
	return &attendanceService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

func summaryCacheKey(projectID string, year int, month time.Month) string {
	return fmt.Sprintf("attendance:summary:%s:%04d-%02d", projectID, year, month)
}

// parseDateKey validates and parses a YYYY-MM-DD date key.
func parseDateKey(s string) (time.Time, error) {
	if len(s) != 10 {
		return time.Time{}, ErrInvalidDateKey
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateKey
	}
	return t, nil
}

// ────────────────────── GetGrid ──────────────────────

func (s *attendanceService) GetGrid(ctx context.Context, projectID string, year int, month time.Month) (*dto.GridResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("lookup project failed", zap.Error(err))
		return nil, err
	}

	mode := schedule.ModeDefault
	var sched *model.MeetingSchedule
	if project.MeetingBased {
		mode = schedule.ModeMeeting
		sched = project.MeetingSchedule
	}

	records, err := s.repo.Attendance.ListByProjectMonth(ctx, projectID, year, month)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}

	members, err := s.repo.Project.ListMembers(ctx, projectID)
	if err != nil {
		s.logger.Error("list members failed", zap.Error(err))
		return nil, err
	}

	grid := schedule.NewGrid(year, month, mode, sched, false)
	grid.Seed(records)

	days := schedule.MonthDays(year, month, sched)
	dayResp := make([]dto.GridDayResponse, 0, len(days))
	for _, d := range days {
		dayResp = append(dayResp, dto.GridDayResponse{
			Day:       d.Day,
			Weekday:   d.Weekday.String(),
			Weekend:   d.Weekend,
			Scheduled: d.Scheduled,
		})
	}

	cells := make([]dto.GridCellResponse, 0, len(members)*len(days))
	for _, m := range members {
		for _, d := range days {
			cells = append(cells, dto.GridCellResponse{
				UserID: m.UserID,
				Date:   fmt.Sprintf("%04d-%02d-%02d", year, month, d.Day),
				Status: grid.Status(m.UserID, d.Day),
			})
		}
	}

	return &dto.GridResponse{
		ProjectID:    projectID,
		Year:         year,
		Month:        int(month),
		MeetingBased: project.MeetingBased,
		Days:         dayResp,
		Cells:        cells,
	}, nil
}

// ────────────────────── BulkSave ──────────────────────

func (s *attendanceService) BulkSave(ctx context.Context, projectID string, req *dto.BulkSaveRequest, caller Caller) (*dto.BulkSaveResponse, error) {
	if _, err := requireProjectLead(ctx, s.repo, caller, projectID); err != nil {
		return nil, err
	}

	// validate every date key before touching the database
	dates := make([]time.Time, len(req.Records))
	for i, rec := range req.Records {
		t, err := parseDateKey(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateKey, rec.Date)
		}
		dates[i] = t
	}

	// fan out one existence-check-then-upsert per record; results are
	// collected per index, no ordering guarantee between records
	results := make([]dto.SaveResultResponse, len(req.Records))
	var wg sync.WaitGroup
	for i := range req.Records {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.saveOne(ctx, projectID, &req.Records[i], dates[i])
		}(i)
	}
	wg.Wait()

	resp := &dto.BulkSaveResponse{Total: len(results), Results: results}
	for _, r := range results {
		if r.Saved {
			resp.Saved++
		} else {
			resp.Failed++
		}
	}

	s.invalidateSummary(ctx, projectID, dates)

	return resp, nil
}

// saveOne checks for an existing (user, project, date) row and updates it in
// place, inserting otherwise, so duplicate-key errors never surface.
func (s *attendanceService) saveOne(ctx context.Context, projectID string, rec *dto.SaveAttendanceRecord, date time.Time) dto.SaveResultResponse {
	result := dto.SaveResultResponse{UserID: rec.UserID, Date: rec.Date}

	existing, err := s.repo.Attendance.GetByKey(ctx, rec.UserID, projectID, date)
	switch {
	case err == nil:
		existing.Status = rec.Status
		existing.CheckIn = rec.CheckIn
		existing.CheckOut = rec.CheckOut
		existing.Notes = rec.Notes
		if err := s.repo.Attendance.Update(ctx, existing); err != nil {
			s.logger.Error("update attendance failed",
				zap.String("user_id", rec.UserID), zap.String("date", rec.Date), zap.Error(err))
			result.Error = err.Error()
			return result
		}
		result.Saved = true

	case errors.Is(err, gorm.ErrRecordNotFound):
		record := &model.AttendanceRecord{
			UserID:    rec.UserID,
			ProjectID: projectID,
			Date:      date,
			Status:    rec.Status,
			CheckIn:   rec.CheckIn,
			CheckOut:  rec.CheckOut,
			Notes:     rec.Notes,
		}
		if err := s.repo.Attendance.Create(ctx, record); err != nil {
			s.logger.Error("insert attendance failed",
				zap.String("user_id", rec.UserID), zap.String("date", rec.Date), zap.Error(err))
			result.Error = err.Error()
			return result
		}
		result.Saved = true
		result.Created = true

	default:
		s.logger.Error("lookup attendance failed",
			zap.String("user_id", rec.UserID), zap.String("date", rec.Date), zap.Error(err))
		result.Error = err.Error()
	}

	return result
}

func (s *attendanceService) invalidateSummary(ctx context.Context, projectID string, dates []time.Time) {
	if s.rdb == nil {
		return
	}
	seen := make(map[string]bool)
	var keys []string
	for _, d := range dates {
		k := summaryCacheKey(projectID, d.Year(), d.Month())
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	if err := s.rdb.CacheDelete(ctx, keys...); err != nil {
		s.logger.Warn("invalidate summary cache failed", zap.Error(err))
	}
}

// ────────────────────── points ──────────────────────

func (s *attendanceService) GetPoints(ctx context.Context, userID string) (*dto.PointsResponse, error) {
	points, err := s.repo.Attendance.GetPoints(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPointsNotFound
		}
		s.logger.Error("lookup points failed", zap.Error(err))
		return nil, err
	}
	return &dto.PointsResponse{
		UserID:      points.UserID,
		Points:      points.Points,
		LastUpdated: points.LastUpdated.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

func (s *attendanceService) RepairPoints(ctx context.Context, userID string, caller Caller) (*dto.RepairPointsResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrAdminRequired
	}

	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	count, err := s.repo.Attendance.CountQualifying(ctx, userID)
	if err != nil {
		s.logger.Error("count qualifying attendance failed", zap.Error(err))
		return nil, err
	}

	points := int(count) * model.PointsPerDay
	if err := s.repo.Attendance.UpsertPoints(ctx, &model.AttendancePoints{
		UserID: userID,
		Points: points,
	}); err != nil {
		s.logger.Error("upsert points failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("attendance points repaired",
		zap.String("user_id", userID),
		zap.Int64("qualifying_days", count),
		zap.Int("points", points))

	return &dto.RepairPointsResponse{
		UserID:         userID,
		QualifyingDays: count,
		Points:         points,
	}, nil
}

// ────────────────────── MonthSummary ──────────────────────

func (s *attendanceService) MonthSummary(ctx context.Context, projectID string, year int, month time.Month) (*dto.MonthSummaryResponse, error) {
	cacheKey := summaryCacheKey(projectID, year, month)
	if s.rdb != nil {
		if b, err := s.rdb.CacheGet(ctx, cacheKey); err == nil {
			var cached dto.MonthSummaryResponse
			if json.Unmarshal(b, &cached) == nil {
				return &cached, nil
			}
		}
	}

	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	members, err := s.repo.Project.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.Attendance.ListByProjectMonth(ctx, projectID, year, month)
	if err != nil {
		return nil, err
	}

	var sched *model.MeetingSchedule
	if project.MeetingBased {
		sched = project.MeetingSchedule
	}

	byUser := make(map[string][]model.AttendanceRecord)
	for _, r := range records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	resp := &dto.MonthSummaryResponse{
		ProjectID: projectID,
		Year:      year,
		Month:     int(month),
		Members:   make([]dto.MemberSummaryResponse, 0, len(members)),
	}
	for _, m := range members {
		summary := dto.MemberSummaryResponse{UserID: m.UserID}
		if m.User != nil {
			summary.Name = m.User.Name
		}
		var scheduled int
		for _, r := range byUser[m.UserID] {
			if !schedule.IsScheduledDay(r.Date.Year(), r.Date.Month(), r.Date.Day(), sched) {
				continue
			}
			scheduled++
			switch r.Status {
			case model.StatusPresent, model.StatusLate:
				summary.Present++
			case model.StatusAbsent:
				summary.Absent++
			case model.StatusExcused:
				summary.Excused++
			}
		}
		summary.Percentage = attendancePercentage(scheduled, summary.Absent)
		resp.Members = append(resp.Members, summary)
	}

	if s.rdb != nil {
		if b, err := json.Marshal(resp); err == nil {
			_ = s.rdb.CacheSet(ctx, cacheKey, b, s.cfg.Portal.SummaryCacheTTL)
		}
	}

	return resp, nil
}

// attendancePercentage computes (scheduled-absences)/scheduled*100 using
// truncating division: 5 of 8 scheduled days is 62, not 63. Do not change
// this to rounding, downstream reports expect the truncated value. With
// nothing scheduled there is nothing missed.
func attendancePercentage(scheduled, absences int) int {
	if scheduled <= 0 {
		return 100
	}
	return (scheduled - absences) * 100 / scheduled
}
