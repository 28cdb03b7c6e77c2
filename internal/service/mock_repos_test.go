package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
)

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Project:      newMockProjectRepo(),
		Attendance:   newMockAttendanceRepo(),
		Notification: newMockNotificationRepo(),
		Checklist:    newMockChecklistRepo(),
		Banner:       newMockBannerRepo(),
		Survey:       newMockSurveyRepo(),
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User
	idCounter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.idCounter++
		user.UserID = fmt.Sprintf("user-%d", m.idCounter)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, role, keyword string, offset, limit int) ([]model.User, int64, error) {
	var filtered []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(keyword)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(keyword)) {
			continue
		}
		filtered = append(filtered, *u)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

// ── Mock ProjectRepository ──

// The mocks backing concurrent services carry a mutex: the real GORM repos are
// goroutine-safe, and the bulk-save and notification fan-outs hit these from
// multiple goroutines at once.
type mockProjectRepo struct {
	mu        sync.Mutex
	projects  map[string]*model.Project
	members   []model.ProjectMember
	idCounter int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if project.ProjectID == "" {
		m.idCounter++
		project.ProjectID = fmt.Sprintf("proj-%d", m.idCounter)
	}
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) GetByName(_ context.Context, name string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects, id)
	return nil
}

func (m *mockProjectRepo) List(_ context.Context, includeInactive bool) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Project
	for _, p := range m.projects {
		if !includeInactive && !p.IsActive {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProjectRepo) ListMembers(_ context.Context, projectID string) ([]model.ProjectMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.ProjectMember
	for _, pm := range m.members {
		if pm.ProjectID == projectID {
			result = append(result, pm)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) AddMember(_ context.Context, member *model.ProjectMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members = append(m.members, *member)
	return nil
}

func (m *mockProjectRepo) RemoveMember(_ context.Context, projectID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var remaining []model.ProjectMember
	for _, pm := range m.members {
		if !(pm.ProjectID == projectID && pm.UserID == userID) {
			remaining = append(remaining, pm)
		}
	}
	m.members = remaining
	return nil
}

func (m *mockProjectRepo) IsMember(_ context.Context, projectID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pm := range m.members {
		if pm.ProjectID == projectID && pm.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProjectRepo) CountMembers(_ context.Context, projectID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, pm := range m.members {
		if pm.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	mu        sync.Mutex
	records   map[string]*model.AttendanceRecord // key: user:project:date
	points    map[string]*model.AttendancePoints
	idCounter int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records: make(map[string]*model.AttendanceRecord),
		points:  make(map[string]*model.AttendancePoints),
	}
}

func recordKey(userID, projectID string, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", userID, projectID, date.Format("2006-01-02"))
}

// applyTrigger mirrors the database trigger: recounts qualifying rows for one
// user and overwrites the aggregate. Callers hold m.mu, so the recount stays
// atomic with the row write that caused it.
func (m *mockAttendanceRepo) applyTrigger(userID string) {
	var count int
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		switch r.Status {
		case model.StatusPresent, model.StatusLate, model.StatusExcused:
			count++
		}
	}
	m.points[userID] = &model.AttendancePoints{
		UserID:      userID,
		Points:      count * model.PointsPerDay,
		LastUpdated: time.Now(),
	}
}

func (m *mockAttendanceRepo) GetByKey(_ context.Context, userID, projectID string, date time.Time) (*model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[recordKey(userID, projectID, date)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record.AttendanceID == "" {
		m.idCounter++
		record.AttendanceID = fmt.Sprintf("att-%d", m.idCounter)
	}
	key := recordKey(record.UserID, record.ProjectID, record.Date)
	if _, exists := m.records[key]; exists {
		return fmt.Errorf("duplicate key: %s", key)
	}
	m.records[key] = record
	m.applyTrigger(record.UserID)
	return nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, record *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordKey(record.UserID, record.ProjectID, record.Date)] = record
	m.applyTrigger(record.UserID)
	return nil
}

func (m *mockAttendanceRepo) ListByProjectMonth(_ context.Context, projectID string, year int, month time.Month) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.ProjectID == projectID && r.Date.Year() == year && r.Date.Month() == month {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByUserProjectMonth(_ context.Context, userID, projectID string, year int, month time.Month) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.UserID == userID && r.ProjectID == projectID && r.Date.Year() == year && r.Date.Month() == month {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) CountQualifying(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		switch r.Status {
		case model.StatusPresent, model.StatusLate, model.StatusExcused:
			count++
		}
	}
	return count, nil
}

func (m *mockAttendanceRepo) GetPoints(_ context.Context, userID string) (*model.AttendancePoints, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.points[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) UpsertPoints(_ context.Context, points *model.AttendancePoints) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points[points.UserID] = &model.AttendancePoints{
		UserID:      points.UserID,
		Points:      points.Points,
		LastUpdated: time.Now(),
	}
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	mu            sync.Mutex
	notifications []model.Notification
	idCounter     int
	failCreate    bool // force Create errors
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return fmt.Errorf("notification store unavailable")
	}
	m.idCounter++
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", m.idCounter)
	}
	n.CreatedAt = time.Now()
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var filtered []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		filtered = append(filtered, n)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notifications {
		if n.NotificationID == id && n.UserID == userID {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notifications {
		if n.UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) ExistsMonthlyWarning(_ context.Context, userID, notifType, projectID, monthTag string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifications {
		if n.UserID != userID || n.Type != notifType || n.Metadata == nil {
			continue
		}
		if n.Metadata["project_id"] == projectID && n.Metadata["month"] == monthTag {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock ChecklistRepository ──

type mockChecklistRepo struct {
	items     map[string]*model.ChecklistItem
	idCounter int
}

func newMockChecklistRepo() *mockChecklistRepo {
	return &mockChecklistRepo{items: make(map[string]*model.ChecklistItem)}
}

func (m *mockChecklistRepo) Create(_ context.Context, item *model.ChecklistItem) error {
	if item.ChecklistItemID == "" {
		m.idCounter++
		item.ChecklistItemID = fmt.Sprintf("check-%d", m.idCounter)
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	m.items[item.ChecklistItemID] = item
	return nil
}

func (m *mockChecklistRepo) GetByID(_ context.Context, id string) (*model.ChecklistItem, error) {
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChecklistRepo) Update(_ context.Context, item *model.ChecklistItem) error {
	item.UpdatedAt = time.Now()
	m.items[item.ChecklistItemID] = item
	return nil
}

func (m *mockChecklistRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockChecklistRepo) ListByMember(_ context.Context, projectID, userID string) ([]model.ChecklistItem, error) {
	var result []model.ChecklistItem
	for _, item := range m.items {
		if item.ProjectID == projectID && item.UserID == userID {
			result = append(result, *item)
		}
	}
	return result, nil
}

// ── Mock BannerRepository ──

type mockBannerRepo struct {
	banners   map[string]*model.NewsBanner
	idCounter int
}

func newMockBannerRepo() *mockBannerRepo {
	return &mockBannerRepo{banners: make(map[string]*model.NewsBanner)}
}

func (m *mockBannerRepo) Create(_ context.Context, banner *model.NewsBanner) error {
	if banner.BannerID == "" {
		m.idCounter++
		banner.BannerID = fmt.Sprintf("banner-%d", m.idCounter)
	}
	m.banners[banner.BannerID] = banner
	return nil
}

func (m *mockBannerRepo) GetByID(_ context.Context, id string) (*model.NewsBanner, error) {
	if b, ok := m.banners[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBannerRepo) Update(_ context.Context, banner *model.NewsBanner) error {
	m.banners[banner.BannerID] = banner
	return nil
}

func (m *mockBannerRepo) Delete(_ context.Context, id string) error {
	delete(m.banners, id)
	return nil
}

func (m *mockBannerRepo) ListAll(_ context.Context) ([]model.NewsBanner, error) {
	var result []model.NewsBanner
	for _, b := range m.banners {
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBannerRepo) ListActive(_ context.Context, now time.Time) ([]model.NewsBanner, error) {
	var result []model.NewsBanner
	for _, b := range m.banners {
		if b.IsActive && !b.StartsAt.After(now) && !b.EndsAt.Before(now) {
			result = append(result, *b)
		}
	}
	return result, nil
}

// ── Mock SurveyRepository ──

type mockSurveyRepo struct {
	surveys    map[string]*model.Survey
	responses  []model.SurveyResponse
	dismissals []model.SurveyDismissal
	idCounter  int
}

func newMockSurveyRepo() *mockSurveyRepo {
	return &mockSurveyRepo{surveys: make(map[string]*model.Survey)}
}

func (m *mockSurveyRepo) CreateWithQuestions(_ context.Context, survey *model.Survey, questions []model.SurveyQuestion) error {
	if survey.SurveyID == "" {
		m.idCounter++
		survey.SurveyID = fmt.Sprintf("survey-%d", m.idCounter)
	}
	survey.CreatedAt = time.Now()
	for i := range questions {
		questions[i].SurveyID = survey.SurveyID
		if questions[i].QuestionID == "" {
			questions[i].QuestionID = fmt.Sprintf("%s-q%d", survey.SurveyID, i+1)
		}
	}
	survey.Questions = questions
	m.surveys[survey.SurveyID] = survey
	return nil
}

func (m *mockSurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	if s, ok := m.surveys[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSurveyRepo) Update(_ context.Context, survey *model.Survey) error {
	m.surveys[survey.SurveyID] = survey
	return nil
}

func (m *mockSurveyRepo) ListActive(_ context.Context) ([]model.Survey, error) {
	var result []model.Survey
	for _, s := range m.surveys {
		if s.Status == model.SurveyActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSurveyRepo) CreateResponse(_ context.Context, resp *model.SurveyResponse) error {
	if resp.ResponseID == "" {
		resp.ResponseID = fmt.Sprintf("resp-%d", len(m.responses)+1)
	}
	resp.SubmittedAt = time.Now()
	m.responses = append(m.responses, *resp)
	return nil
}

func (m *mockSurveyRepo) HasResponse(_ context.Context, surveyID, userID string) (bool, error) {
	for _, r := range m.responses {
		if r.SurveyID == surveyID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSurveyRepo) UpsertDismissal(_ context.Context, d *model.SurveyDismissal) error {
	for _, existing := range m.dismissals {
		if existing.SurveyID == d.SurveyID && existing.UserID == d.UserID {
			return nil
		}
	}
	d.DismissedAt = time.Now()
	m.dismissals = append(m.dismissals, *d)
	return nil
}

func (m *mockSurveyRepo) ListDismissedIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for _, d := range m.dismissals {
		if d.UserID == userID {
			ids = append(ids, d.SurveyID)
		}
	}
	return ids, nil
}

func (m *mockSurveyRepo) ListRespondedIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for _, r := range m.responses {
		if r.UserID == userID {
			ids = append(ids, r.SurveyID)
		}
	}
	return ids, nil
}
