package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
)

func setupTestWarningService(now time.Time) (WarningService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewWarningService(testConfig(), repo, zap.NewNop())
	svc.(*warningService).now = func() time.Time { return now }
	return svc, repo
}

func seedAbsences(repo *repository.Repository, userID, projectID string, dates []time.Time, status string) {
	for _, d := range dates {
		_ = repo.Attendance.Create(context.Background(), &model.AttendanceRecord{
			UserID: userID, ProjectID: projectID, Date: d, Status: status,
		})
	}
}

func TestWarningService_CheckAbsences_ThresholdReached(t *testing.T) {
	// end of March 2025: all meeting days are in the past
	svc, repo := setupTestWarningService(date(2025, time.March, 31))
	seedMeetingProject(repo, "proj-m", "lead-1", []string{"monday"}, "member-1")

	// Mondays in March 2025: 3, 10, 17, 24, 31
	seedAbsences(repo, "member-1", "proj-m", []time.Time{
		date(2025, time.March, 3),
		date(2025, time.March, 10),
		date(2025, time.March, 17),
	}, model.StatusAbsent)
	seedAbsences(repo, "member-1", "proj-m", []time.Time{
		date(2025, time.March, 24),
	}, model.StatusPresent)

	resp, err := svc.CheckAbsences(context.Background(), "proj-m", 2025, time.March, Caller{UserID: "lead-1", Role: model.RoleLead})
	if err != nil {
		t.Fatalf("CheckAbsences should succeed: %v", err)
	}
	if len(resp.Warnings) != 1 {
		t.Fatalf("expected 1 member, got %d", len(resp.Warnings))
	}

	w := resp.Warnings[0]
	if w.Absences != 3 {
		t.Errorf("expected absences=3, got %d", w.Absences)
	}
	if !w.HasWarning {
		t.Error("expected has_warning=true at threshold")
	}
	if !w.NotificationSent {
		t.Error("expected notification_sent=true")
	}

	// the member got a warning notification
	notifs, _, _ := repo.Notification.ListByUser(context.Background(), "member-1", false, 0, 10)
	if len(notifs) != 1 {
		t.Fatalf("expected 1 notification for member, got %d", len(notifs))
	}
	if notifs[0].Type != model.NotificationAttendanceWarning {
		t.Errorf("expected type=%s, got %s", model.NotificationAttendanceWarning, notifs[0].Type)
	}

	// the team lead got the absence report
	leadNotifs, _, _ := repo.Notification.ListByUser(context.Background(), "lead-1", false, 0, 10)
	if len(leadNotifs) != 1 {
		t.Fatalf("expected 1 notification for lead, got %d", len(leadNotifs))
	}
	if leadNotifs[0].Type != model.NotificationAbsenceReport {
		t.Errorf("expected type=%s, got %s", model.NotificationAbsenceReport, leadNotifs[0].Type)
	}
}

func TestWarningService_CheckAbsences_BelowThreshold(t *testing.T) {
	svc, repo := setupTestWarningService(date(2025, time.March, 31))
	seedMeetingProject(repo, "proj-m", "lead-1", []string{"monday"}, "member-1")

	seedAbsences(repo, "member-1", "proj-m", []time.Time{
		date(2025, time.March, 3),
		date(2025, time.March, 10),
	}, model.StatusAbsent)

	resp, err := svc.CheckAbsences(context.Background(), "proj-m", 2025, time.March, Caller{UserID: "lead-1", Role: model.RoleLead})
	if err != nil {
		t.Fatalf("CheckAbsences should succeed: %v", err)
	}
	if resp.Warnings[0].HasWarning {
		t.Error("2 absences should stay below a threshold of 3")
	}

	notifs, _, _ := repo.Notification.ListByUser(context.Background(), "member-1", false, 0, 10)
	if len(notifs) != 0 {
		t.Errorf("no notification expected below threshold, got %d", len(notifs))
	}
}

func TestWarningService_CheckAbsences_IgnoresFutureDays(t *testing.T) {
	// mid-month: the 17th and later have not happened yet
	svc, repo := setupTestWarningService(date(2025, time.March, 12))
	seedMeetingProject(repo, "proj-m", "lead-1", []string{"monday"}, "member-1")

	seedAbsences(repo, "member-1", "proj-m", []time.Time{
		date(2025, time.March, 3),
		date(2025, time.March, 10),
		date(2025, time.March, 17),
		date(2025, time.March, 24),
	}, model.StatusAbsent)

	resp, err := svc.CheckAbsences(context.Background(), "proj-m", 2025, time.March, Caller{UserID: "lead-1", Role: model.RoleLead})
	if err != nil {
		t.Fatalf("CheckAbsences should succeed: %v", err)
	}
	w := resp.Warnings[0]
	if w.Absences != 2 {
		t.Errorf("future absences must not count: expected 2, got %d", w.Absences)
	}
	if w.HasWarning {
		t.Error("expected no warning when past absences stay below threshold")
	}
}

func TestWarningService_CheckAbsences_WarnsOncePerMonth(t *testing.T) {
	svc, repo := setupTestWarningService(date(2025, time.March, 31))
	seedMeetingProject(repo, "proj-m", "lead-1", []string{"monday"}, "member-1")

	seedAbsences(repo, "member-1", "proj-m", []time.Time{
		date(2025, time.March, 3),
		date(2025, time.March, 10),
		date(2025, time.March, 17),
	}, model.StatusAbsent)

	caller := Caller{UserID: "lead-1", Role: model.RoleLead}
	if _, err := svc.CheckAbsences(context.Background(), "proj-m", 2025, time.March, caller); err != nil {
		t.Fatalf("first check should succeed: %v", err)
	}
	resp, err := svc.CheckAbsences(context.Background(), "proj-m", 2025, time.March, caller)
	if err != nil {
		t.Fatalf("second check should succeed: %v", err)
	}
	if !resp.Warnings[0].NotificationSent {
		t.Error("second run should still report the warning as sent")
	}

	notifs, _, _ := repo.Notification.ListByUser(context.Background(), "member-1", false, 0, 10)
	if len(notifs) != 1 {
		t.Errorf("repeat checks must not duplicate the warning: got %d notifications", len(notifs))
	}
}

func TestWarningService_CheckAbsences_NotificationFailureNonFatal(t *testing.T) {
	svc, repo := setupTestWarningService(date(2025, time.March, 31))
	seedMeetingProject(repo, "proj-m", "lead-1", []string{"monday"}, "member-1")

	seedAbsences(repo, "member-1", "proj-m", []time.Time{
		date(2025, time.March, 3),
		date(2025, time.March, 10),
		date(2025, time.March, 17),
	}, model.StatusAbsent)

	repo.Notification.(*mockNotificationRepo).failCreate = true

	resp, err := svc.CheckAbsences(context.Background(), "proj-m", 2025, time.March, Caller{UserID: "lead-1", Role: model.RoleLead})
	if err != nil {
		t.Fatalf("check must not fail when the notification store is down: %v", err)
	}
	w := resp.Warnings[0]
	if !w.HasWarning {
		t.Error("warning detection must not depend on notification delivery")
	}
	if w.NotificationSent {
		t.Error("expected notification_sent=false on delivery failure")
	}
}

func TestWarningService_CheckAbsences_RequiresLead(t *testing.T) {
	svc, repo := setupTestWarningService(date(2025, time.March, 31))
	seedMeetingProject(repo, "proj-m", "lead-1", []string{"monday"}, "member-1")

	_, err := svc.CheckAbsences(context.Background(), "proj-m", 2025, time.March, Caller{UserID: "member-1", Role: model.RoleMember})
	if !errors.Is(err, ErrNotTeamLead) {
		t.Errorf("expected ErrNotTeamLead, got: %v", err)
	}
}
