package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/CodebilityDev/codebility-plus-sub001/config"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/schedule"
)

// ── test helpers ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-0123456789",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Portal: config.PortalConfig{
			SummaryCacheTTL:  5 * time.Minute,
			AbsenceThreshold: 3,
		},
	}
}

func setupTestAttendanceService() (AttendanceService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewAttendanceService(testConfig(), repo, nil, zap.NewNop())
	return svc, repo
}

func seedProject(repo *repository.Repository, projectID, leadID string, memberIDs ...string) *model.Project {
	lead := &model.User{UserID: leadID, Name: "Lead " + leadID, Email: leadID + "@test.dev", Role: model.RoleLead}
	_ = repo.User.Create(context.Background(), lead)

	project := &model.Project{
		ProjectID:  projectID,
		Name:       "Project " + projectID,
		TeamLeadID: &leadID,
		IsActive:   true,
	}
	_ = repo.Project.Create(context.Background(), project)

	for _, id := range memberIDs {
		user := &model.User{UserID: id, Name: "Member " + id, Email: id + "@test.dev", Role: model.RoleMember}
		_ = repo.User.Create(context.Background(), user)
		_ = repo.Project.AddMember(context.Background(), &model.ProjectMember{
			ProjectID: projectID,
			UserID:    id,
			User:      user,
		})
	}
	return project
}

func seedMeetingProject(repo *repository.Repository, projectID, leadID string, days []string, memberIDs ...string) *model.Project {
	project := seedProject(repo, projectID, leadID, memberIDs...)
	project.MeetingBased = true
	project.MeetingSchedule = &model.MeetingSchedule{Days: days, Time: "09:00"}
	_ = repo.Project.Update(context.Background(), project)
	return project
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ── GetGrid ──

func TestAttendanceService_GetGrid_Defaults(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedProject(repo, "proj-a", "lead-1", "member-1")

	// March 2025: the 1st is a Saturday, the 3rd a Monday
	grid, err := svc.GetGrid(context.Background(), "proj-a", 2025, time.March)
	if err != nil {
		t.Fatalf("GetGrid should succeed: %v", err)
	}
	if len(grid.Days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(grid.Days))
	}
	if len(grid.Cells) != 31 {
		t.Fatalf("expected 31 cells for one member, got %d", len(grid.Cells))
	}

	byDate := make(map[string]string)
	for _, c := range grid.Cells {
		byDate[c.Date] = c.Status
	}
	if byDate["2025-03-01"] != model.StatusWeekend {
		t.Errorf("saturday should default to weekend, got %s", byDate["2025-03-01"])
	}
	if byDate["2025-03-03"] != model.StatusAbsent {
		t.Errorf("weekday should default to absent, got %s", byDate["2025-03-03"])
	}
}

func TestAttendanceService_GetGrid_SeedsStoredRecords(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedProject(repo, "proj-a", "lead-1", "member-1")

	_ = repo.Attendance.Create(context.Background(), &model.AttendanceRecord{
		UserID: "member-1", ProjectID: "proj-a",
		Date: date(2025, time.March, 3), Status: model.StatusPresent,
	})

	grid, err := svc.GetGrid(context.Background(), "proj-a", 2025, time.March)
	if err != nil {
		t.Fatalf("GetGrid should succeed: %v", err)
	}
	for _, c := range grid.Cells {
		if c.Date == "2025-03-03" && c.Status != model.StatusPresent {
			t.Errorf("stored record should win over the default, got %s", c.Status)
		}
	}
}

func TestAttendanceService_GetGrid_MeetingMode(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedMeetingProject(repo, "proj-m", "lead-1", []string{"monday"}, "member-1")

	grid, err := svc.GetGrid(context.Background(), "proj-m", 2025, time.March)
	if err != nil {
		t.Fatalf("GetGrid should succeed: %v", err)
	}
	if !grid.MeetingBased {
		t.Error("expected meeting_based=true")
	}

	byDate := make(map[string]string)
	for _, c := range grid.Cells {
		byDate[c.Date] = c.Status
	}
	// March 4 2025 is a Tuesday: not a meeting day
	if byDate["2025-03-04"] != schedule.StatusNotScheduled {
		t.Errorf("non-meeting weekday should be not_scheduled, got %s", byDate["2025-03-04"])
	}
	// March 3 2025 is a Monday: scheduled, defaults to absent
	if byDate["2025-03-03"] != model.StatusAbsent {
		t.Errorf("meeting day should default to absent, got %s", byDate["2025-03-03"])
	}
}

func TestAttendanceService_GetGrid_ProjectNotFound(t *testing.T) {
	svc, _ := setupTestAttendanceService()

	_, err := svc.GetGrid(context.Background(), "nonexistent", 2025, time.March)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got: %v", err)
	}
}

// ── BulkSave ──

func TestAttendanceService_BulkSave_CreatesAndUpdates(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedProject(repo, "proj-a", "lead-1", "member-1")
	lead := Caller{UserID: "lead-1", Role: model.RoleLead}

	req := &dto.BulkSaveRequest{Records: []dto.SaveAttendanceRecord{
		{UserID: "member-1", Date: "2025-03-03", Status: model.StatusPresent},
		{UserID: "member-1", Date: "2025-03-04", Status: model.StatusAbsent},
	}}

	resp, err := svc.BulkSave(context.Background(), "proj-a", req, lead)
	if err != nil {
		t.Fatalf("BulkSave should succeed: %v", err)
	}
	if resp.Saved != 2 || resp.Failed != 0 {
		t.Fatalf("expected saved=2 failed=0, got saved=%d failed=%d", resp.Saved, resp.Failed)
	}
	for _, r := range resp.Results {
		if !r.Created {
			t.Errorf("first save of %s should create, not update", r.Date)
		}
	}

	// saving the same keys again must update in place, not duplicate
	req.Records[0].Status = model.StatusLate
	resp, err = svc.BulkSave(context.Background(), "proj-a", req, lead)
	if err != nil {
		t.Fatalf("second BulkSave should succeed: %v", err)
	}
	if resp.Saved != 2 {
		t.Fatalf("expected saved=2 on resave, got %d", resp.Saved)
	}
	for _, r := range resp.Results {
		if r.Created {
			t.Errorf("resave of %s should update, not create", r.Date)
		}
	}

	rec, err := repo.Attendance.GetByKey(context.Background(), "member-1", "proj-a", date(2025, time.March, 3))
	if err != nil {
		t.Fatalf("record should exist: %v", err)
	}
	if rec.Status != model.StatusLate {
		t.Errorf("expected updated status=late, got %s", rec.Status)
	}
}

func TestAttendanceService_BulkSave_InvalidDate(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedProject(repo, "proj-a", "lead-1", "member-1")

	req := &dto.BulkSaveRequest{Records: []dto.SaveAttendanceRecord{
		{UserID: "member-1", Date: "03/03/2025", Status: model.StatusPresent},
	}}
	_, err := svc.BulkSave(context.Background(), "proj-a", req, Caller{UserID: "lead-1", Role: model.RoleLead})
	if !errors.Is(err, ErrInvalidDateKey) {
		t.Errorf("expected ErrInvalidDateKey, got: %v", err)
	}
}

func TestAttendanceService_BulkSave_RequiresLead(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedProject(repo, "proj-a", "lead-1", "member-1")

	req := &dto.BulkSaveRequest{Records: []dto.SaveAttendanceRecord{
		{UserID: "member-1", Date: "2025-03-03", Status: model.StatusPresent},
	}}
	_, err := svc.BulkSave(context.Background(), "proj-a", req, Caller{UserID: "member-1", Role: model.RoleMember})
	if !errors.Is(err, ErrNotTeamLead) {
		t.Errorf("expected ErrNotTeamLead, got: %v", err)
	}
}

func TestAttendanceService_BulkSave_LargeBatchFanOut(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	members := []string{
		"member-1", "member-2", "member-3", "member-4",
		"member-5", "member-6", "member-7", "member-8",
	}
	seedProject(repo, "proj-a", "lead-1", members...)
	lead := Caller{UserID: "lead-1", Role: model.RoleLead}

	// every save goroutine hits the shared store at once
	var records []dto.SaveAttendanceRecord
	dates := []string{"2025-03-03", "2025-03-05", "2025-03-10", "2025-03-12", "2025-03-17"}
	for _, id := range members {
		for _, d := range dates {
			records = append(records, dto.SaveAttendanceRecord{
				UserID: id, Date: d, Status: model.StatusPresent,
			})
		}
	}

	resp, err := svc.BulkSave(context.Background(), "proj-a", &dto.BulkSaveRequest{Records: records}, lead)
	if err != nil {
		t.Fatalf("BulkSave should succeed: %v", err)
	}
	if resp.Saved != len(records) || resp.Failed != 0 {
		t.Fatalf("expected saved=%d failed=0, got saved=%d failed=%d", len(records), resp.Saved, resp.Failed)
	}

	for _, id := range members {
		pts, err := repo.Attendance.GetPoints(context.Background(), id)
		if err != nil {
			t.Fatalf("points for %s should exist: %v", id, err)
		}
		if pts.Points != len(dates)*model.PointsPerDay {
			t.Errorf("points for %s = %d, want %d", id, pts.Points, len(dates)*model.PointsPerDay)
		}
	}
}

func TestAttendanceService_BulkSave_AdminAllowed(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedProject(repo, "proj-a", "lead-1", "member-1")

	req := &dto.BulkSaveRequest{Records: []dto.SaveAttendanceRecord{
		{UserID: "member-1", Date: "2025-03-03", Status: model.StatusPresent},
	}}
	resp, err := svc.BulkSave(context.Background(), "proj-a", req, Caller{UserID: "admin-1", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("admin BulkSave should succeed: %v", err)
	}
	if resp.Saved != 1 {
		t.Errorf("expected saved=1, got %d", resp.Saved)
	}
}

// ── points ──

func TestAttendanceService_PointsAccrueViaTrigger(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedProject(repo, "proj-a", "lead-1", "member-1")
	lead := Caller{UserID: "lead-1", Role: model.RoleLead}

	// 2 present + 1 excused + 1 absent → 3 qualifying days → 6 points
	req := &dto.BulkSaveRequest{Records: []dto.SaveAttendanceRecord{
		{UserID: "member-1", Date: "2025-03-03", Status: model.StatusPresent},
		{UserID: "member-1", Date: "2025-03-04", Status: model.StatusPresent},
		{UserID: "member-1", Date: "2025-03-05", Status: model.StatusExcused},
		{UserID: "member-1", Date: "2025-03-06", Status: model.StatusAbsent},
	}}
	if _, err := svc.BulkSave(context.Background(), "proj-a", req, lead); err != nil {
		t.Fatalf("BulkSave should succeed: %v", err)
	}

	points, err := svc.GetPoints(context.Background(), "member-1")
	if err != nil {
		t.Fatalf("GetPoints should succeed: %v", err)
	}
	if points.Points != 3*model.PointsPerDay {
		t.Errorf("expected %d points, got %d", 3*model.PointsPerDay, points.Points)
	}

	// flipping a day to absent retracts its points
	req = &dto.BulkSaveRequest{Records: []dto.SaveAttendanceRecord{
		{UserID: "member-1", Date: "2025-03-04", Status: model.StatusAbsent},
	}}
	if _, err := svc.BulkSave(context.Background(), "proj-a", req, lead); err != nil {
		t.Fatalf("BulkSave should succeed: %v", err)
	}
	points, _ = svc.GetPoints(context.Background(), "member-1")
	if points.Points != 2*model.PointsPerDay {
		t.Errorf("expected %d points after retraction, got %d", 2*model.PointsPerDay, points.Points)
	}
}

func TestAttendanceService_RepairPoints_Idempotent(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedProject(repo, "proj-a", "lead-1", "member-1")
	admin := Caller{UserID: "admin-1", Role: model.RoleAdmin}

	_ = repo.Attendance.Create(context.Background(), &model.AttendanceRecord{
		UserID: "member-1", ProjectID: "proj-a",
		Date: date(2025, time.March, 3), Status: model.StatusPresent,
	})
	_ = repo.Attendance.Create(context.Background(), &model.AttendanceRecord{
		UserID: "member-1", ProjectID: "proj-a",
		Date: date(2025, time.March, 4), Status: model.StatusLate,
	})

	// corrupt the aggregate, then repair
	_ = repo.Attendance.UpsertPoints(context.Background(), &model.AttendancePoints{UserID: "member-1", Points: 999})

	first, err := svc.RepairPoints(context.Background(), "member-1", admin)
	if err != nil {
		t.Fatalf("RepairPoints should succeed: %v", err)
	}
	if first.Points != 2*model.PointsPerDay {
		t.Errorf("expected %d points, got %d", 2*model.PointsPerDay, first.Points)
	}

	second, err := svc.RepairPoints(context.Background(), "member-1", admin)
	if err != nil {
		t.Fatalf("repeat RepairPoints should succeed: %v", err)
	}
	if second.Points != first.Points {
		t.Errorf("repair should converge: first=%d second=%d", first.Points, second.Points)
	}
}

func TestAttendanceService_RepairPoints_AdminOnly(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedProject(repo, "proj-a", "lead-1", "member-1")

	_, err := svc.RepairPoints(context.Background(), "member-1", Caller{UserID: "lead-1", Role: model.RoleLead})
	if !errors.Is(err, ErrAdminRequired) {
		t.Errorf("expected ErrAdminRequired, got: %v", err)
	}
}

func TestAttendanceService_GetPoints_NotFound(t *testing.T) {
	svc, _ := setupTestAttendanceService()

	_, err := svc.GetPoints(context.Background(), "nobody")
	if !errors.Is(err, ErrPointsNotFound) {
		t.Errorf("expected ErrPointsNotFound, got: %v", err)
	}
}

// ── MonthSummary ──

func TestAttendanceService_MonthSummary_Percentage(t *testing.T) {
	svc, repo := setupTestAttendanceService()
	seedMeetingProject(repo, "proj-m", "lead-1", []string{"monday", "wednesday"}, "member-1")
	lead := Caller{UserID: "lead-1", Role: model.RoleLead}

	// 8 scheduled meeting days recorded: 5 present, 3 absent → 62%
	records := []dto.SaveAttendanceRecord{
		{UserID: "member-1", Date: "2025-03-03", Status: model.StatusPresent},
		{UserID: "member-1", Date: "2025-03-05", Status: model.StatusPresent},
		{UserID: "member-1", Date: "2025-03-10", Status: model.StatusAbsent},
		{UserID: "member-1", Date: "2025-03-12", Status: model.StatusPresent},
		{UserID: "member-1", Date: "2025-03-17", Status: model.StatusAbsent},
		{UserID: "member-1", Date: "2025-03-19", Status: model.StatusPresent},
		{UserID: "member-1", Date: "2025-03-24", Status: model.StatusAbsent},
		{UserID: "member-1", Date: "2025-03-26", Status: model.StatusPresent},
	}
	if _, err := svc.BulkSave(context.Background(), "proj-m", &dto.BulkSaveRequest{Records: records}, lead); err != nil {
		t.Fatalf("BulkSave should succeed: %v", err)
	}

	summary, err := svc.MonthSummary(context.Background(), "proj-m", 2025, time.March)
	if err != nil {
		t.Fatalf("MonthSummary should succeed: %v", err)
	}
	if len(summary.Members) != 1 {
		t.Fatalf("expected 1 member summary, got %d", len(summary.Members))
	}
	m := summary.Members[0]
	if m.Present != 5 || m.Absent != 3 {
		t.Errorf("expected present=5 absent=3, got present=%d absent=%d", m.Present, m.Absent)
	}
	if m.Percentage != 62 {
		t.Errorf("expected percentage=62, got %d", m.Percentage)
	}
}

func TestAttendancePercentage(t *testing.T) {
	cases := []struct {
		scheduled, absences, want int
	}{
		{8, 3, 62},
		{8, 0, 100},
		{8, 8, 0},
		{0, 0, 100},
		{3, 1, 66},
	}
	for _, c := range cases {
		if got := attendancePercentage(c.scheduled, c.absences); got != c.want {
			t.Errorf("attendancePercentage(%d, %d) = %d, want %d", c.scheduled, c.absences, got, c.want)
		}
	}
}
