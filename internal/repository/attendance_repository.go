//go:generate mockery --name AttendanceRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slabstech/flex-fit-server/internal/middleware"
	"github.com/slabstech/flex-fit-server/internal/model"

	"gorm.io/gorm"
)

// AttendanceRepository インターフェース
type AttendanceRepository interface {
	FindStudentByCode(ctx context.Context, db *gorm.DB, studentID string) (*model.Student, error)
	// ExistsForDate は指定日の出席記録が既に存在するかを返します。
	ExistsForDate(ctx context.Context, db *gorm.DB, studentID string, day time.Time) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, attendance *model.Attendance) error
}

type gormAttendanceRepository struct{}

func NewGormAttendanceRepository() AttendanceRepository {
	return &gormAttendanceRepository{}
}

func (r *gormAttendanceRepository) FindStudentByCode(ctx context.Context, db *gorm.DB, studentID string) (*model.Student, error) {
	logger := middleware.GetLogger(ctx)
	var student model.Student
	result := db.WithContext(ctx).Where("student_id = ?", studentID).First(&student)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding student in DB",
			"error", result.Error,
			"student_id", studentID,
		)
		return nil, fmt.Errorf("gormAttendanceRepository.FindStudentByCode: %w", result.Error)
	}
	return &student, nil
}

func (r *gormAttendanceRepository) ExistsForDate(ctx context.Context, db *gorm.DB, studentID string, day time.Time) (bool, error) {
	logger := middleware.GetLogger(ctx)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var count int64
	result := db.WithContext(ctx).Model(&model.Attendance{}).
		Where("student_id = ? AND timestamp >= ? AND timestamp < ?", studentID, start, end).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error checking attendance existence in DB",
			"error", result.Error,
			"student_id", studentID,
		)
		return false, fmt.Errorf("gormAttendanceRepository.ExistsForDate: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormAttendanceRepository) Create(ctx context.Context, tx *gorm.DB, attendance *model.Attendance) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(attendance)
	if result.Error != nil {
		logger.Error("Error creating attendance in DB",
			"error", result.Error,
			"student_id", attendance.StudentID,
		)
		return fmt.Errorf("gormAttendanceRepository.Create: %w", result.Error)
	}
	return nil
}
