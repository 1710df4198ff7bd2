// internal/model/attendance.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// Student は出席管理の対象者を表します
type Student struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	StudentID string         `gorm:"unique;not null" json:"student_id"` // 学籍番号など外部ID
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Student) TableName() string {
	return "students"
}

// Attendance は出席記録です。1人につき1日1件。
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	StudentID string    `gorm:"not null;index" json:"student_id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// DailyCodeResponse は当日コードAPIのレスポンスDTO
type DailyCodeResponse struct {
	Code string `json:"code"`
	Date string `json:"date"` // ISO-8601 (YYYY-MM-DD)
}

// MarkAttendanceRequest は出席登録リクエストDTO
type MarkAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	QRCode    string `json:"qr_code" validate:"required"`
}

// MarkAttendanceResponse は出席登録レスポンスDTO
type MarkAttendanceResponse struct {
	Message     string    `json:"message"`
	StudentName string    `json:"student_name"`
	Timestamp   time.Time `json:"timestamp"`
}
