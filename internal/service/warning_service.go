package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/CodebilityDev/codebility-plus-sub001/config"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/schedule"
)

// WarningService detects excessive absences and issues monthly warnings.
type WarningService interface {
	// CheckAbsences scans a project month for members whose absences on
	// scheduled days up to today reach the configured threshold. At most one
	// warning notification is sent per member per project per month.
	CheckAbsences(ctx context.Context, projectID string, year int, month time.Month, caller Caller) (*dto.AbsenceCheckResponse, error)
}

type warningService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewWarningService creates a WarningService.
func NewWarningService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) WarningService {
	return &warningService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func monthTag(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func (s *warningService) CheckAbsences(ctx context.Context, projectID string, year int, month time.Month, caller Caller) (*dto.AbsenceCheckResponse, error) {
	project, err := requireProjectLead(ctx, s.repo, caller, projectID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.Project.ListMembers(ctx, projectID)
	if err != nil {
		s.logger.Error("list members failed", zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Attendance.ListByProjectMonth(ctx, projectID, year, month)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}

	var sched *model.MeetingSchedule
	if project.MeetingBased {
		sched = project.MeetingSchedule
	}

	// future days never count: a member cannot be absent from a meeting
	// that has not happened yet
	today := s.now().UTC().Truncate(24 * time.Hour)

	byUser := make(map[string][]model.AttendanceRecord)
	for _, r := range records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	warnings := make([]dto.AbsenceWarningResponse, len(members))
	var wg sync.WaitGroup
	for i, m := range members {
		wg.Add(1)
		go func(i int, m model.ProjectMember) {
			defer wg.Done()
			warnings[i] = s.checkMember(ctx, project, m, byUser[m.UserID], sched, year, month, today)
		}(i, m)
	}
	wg.Wait()

	return &dto.AbsenceCheckResponse{
		ProjectID: projectID,
		Year:      year,
		Month:     int(month),
		Warnings:  warnings,
	}, nil
}

func (s *warningService) checkMember(
	ctx context.Context,
	project *model.Project,
	member model.ProjectMember,
	records []model.AttendanceRecord,
	sched *model.MeetingSchedule,
	year int, month time.Month,
	today time.Time,
) dto.AbsenceWarningResponse {
	w := dto.AbsenceWarningResponse{UserID: member.UserID}
	if member.User != nil {
		w.Name = member.User.Name
	}

	for _, r := range records {
		if r.Date.After(today) {
			continue
		}
		if !schedule.IsScheduledDay(r.Date.Year(), r.Date.Month(), r.Date.Day(), sched) {
			continue
		}
		w.ScheduledDays++
		if r.Status == model.StatusAbsent {
			w.Absences++
		}
	}
	w.Percentage = attendancePercentage(w.ScheduledDays, w.Absences)
	w.HasWarning = w.Absences >= s.cfg.Portal.AbsenceThreshold
	if !w.HasWarning {
		return w
	}

	tag := monthTag(year, month)
	sent, err := s.repo.Notification.ExistsMonthlyWarning(ctx,
		member.UserID, model.NotificationAttendanceWarning, project.ProjectID, tag)
	if err != nil {
		s.logger.Error("warning dedupe lookup failed",
			zap.String("user_id", member.UserID), zap.Error(err))
		return w
	}
	if sent {
		// already warned this month
		w.NotificationSent = true
		return w
	}

	meta := datatypes.JSONMap{
		"project_id": project.ProjectID,
		"month":      tag,
		"absences":   w.Absences,
	}

	if err := s.repo.Notification.Create(ctx, &model.Notification{
		UserID:   member.UserID,
		Type:     model.NotificationAttendanceWarning,
		Title:    "Attendance warning",
		Content:  fmt.Sprintf("You have %d absences in %s on project %s. Please coordinate with your team lead.", w.Absences, tag, project.Name),
		Metadata: meta,
	}); err != nil {
		s.logger.Warn("send attendance warning failed",
			zap.String("user_id", member.UserID), zap.Error(err))
		return w
	}
	w.NotificationSent = true

	// report to the team lead as well; failure here does not retract the
	// member's warning
	if project.TeamLeadID != nil && *project.TeamLeadID != member.UserID {
		if err := s.repo.Notification.Create(ctx, &model.Notification{
			UserID:   *project.TeamLeadID,
			Type:     model.NotificationAbsenceReport,
			Title:    "Member absence report",
			Content:  fmt.Sprintf("%s has %d absences in %s on project %s.", w.Name, w.Absences, tag, project.Name),
			Metadata: meta,
		}); err != nil {
			s.logger.Warn("send absence report failed",
				zap.String("team_lead_id", *project.TeamLeadID), zap.Error(err))
		}
	}

	s.logger.Info("attendance warning issued",
		zap.String("user_id", member.UserID),
		zap.String("project_id", project.ProjectID),
		zap.String("month", tag),
		zap.Int("absences", w.Absences))

	return w
}
