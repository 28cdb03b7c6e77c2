package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
)

// AttendanceRepository is the attendance data-access interface.
// Aggregate points are written only through UpsertPoints (the repair path);
// normal writes rely on the database trigger.
type AttendanceRepository interface {
	GetByKey(ctx context.Context, userID, projectID string, date time.Time) (*model.AttendanceRecord, error)
	Create(ctx context.Context, record *model.AttendanceRecord) error
	Update(ctx context.Context, record *model.AttendanceRecord) error
	ListByProjectMonth(ctx context.Context, projectID string, year int, month time.Month) ([]model.AttendanceRecord, error)
	ListByUserProjectMonth(ctx context.Context, userID, projectID string, year int, month time.Month) ([]model.AttendanceRecord, error)
	CountQualifying(ctx context.Context, userID string) (int64, error)
	GetPoints(ctx context.Context, userID string) (*model.AttendancePoints, error)
	UpsertPoints(ctx context.Context, points *model.AttendancePoints) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates the GORM-backed AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) GetByKey(ctx context.Context, userID, projectID string, date time.Time) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ? AND date = ?", userID, projectID, date.Format("2006-01-02")).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepo) Update(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *attendanceRepo) ListByProjectMonth(ctx context.Context, projectID string, year int, month time.Month) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND date >= ? AND date < ?",
			projectID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepo) ListByUserProjectMonth(ctx context.Context, userID, projectID string, year int, month time.Month) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ? AND date >= ? AND date < ?",
			userID, projectID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepo) CountQualifying(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{model.StatusPresent, model.StatusLate, model.StatusExcused}).
		Count(&count).Error
	return count, err
}

func (r *attendanceRepo) GetPoints(ctx context.Context, userID string) (*model.AttendancePoints, error) {
	var points model.AttendancePoints
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&points).Error
	if err != nil {
		return nil, err
	}
	return &points, nil
}

func (r *attendanceRepo) UpsertPoints(ctx context.Context, points *model.AttendancePoints) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO attendance_points (user_id, points, last_updated)
		      VALUES (?, ?, CURRENT_TIMESTAMP)
		      ON CONFLICT (user_id) DO UPDATE
		          SET points = EXCLUDED.points, last_updated = EXCLUDED.last_updated`,
			points.UserID, points.Points).Error
}
