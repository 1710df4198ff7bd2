package service

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"time"

	"github.com/slabstech/flex-fit-server/internal/middleware"
	"github.com/slabstech/flex-fit-server/internal/model"
	"github.com/slabstech/flex-fit-server/internal/repository"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"gorm.io/gorm"
)

//go:generate mockery --name AttendanceService --output ./mocks --outpkg mocks --case=underscore

// AttendanceService インターフェース
type AttendanceService interface {
	// TodayCode は当日の出席コード (ATTEND-YYYY-MM-DD) を返します。
	TodayCode(ctx context.Context) *model.DailyCodeResponse
	// TodayCodePNG は当日コードをエンコードしたQRコードPNGを返します。
	TodayCodePNG(ctx context.Context) ([]byte, error)
	MarkAttendance(ctx context.Context, req *model.MarkAttendanceRequest) (*model.MarkAttendanceResponse, error)
}

type attendanceService struct {
	db             *gorm.DB
	attendanceRepo repository.AttendanceRepository
	now            func() time.Time
}

// NewAttendanceService は AttendanceService の新しいインスタンスを生成します
func NewAttendanceService(db *gorm.DB, attendanceRepo repository.AttendanceRepository) AttendanceService {
	return &attendanceService{
		db:             db,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

// dailyCode は日替わりの出席コードを組み立てます
func dailyCode(day time.Time) string {
	return "ATTEND-" + day.Format("2006-01-02")
}

func (s *attendanceService) TodayCode(ctx context.Context) *model.DailyCodeResponse {
	today := s.now()
	return &model.DailyCodeResponse{
		Code: dailyCode(today),
		Date: today.Format("2006-01-02"),
	}
}

func (s *attendanceService) TodayCodePNG(ctx context.Context) ([]byte, error) {
	logger := middleware.GetLogger(ctx)

	code := dailyCode(s.now())
	qrCode, err := qr.Encode(code, qr.M, qr.Auto)
	if err != nil {
		logger.Error("Failed to encode QR code", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "QRコードの生成に失敗しました。", "", err)
	}
	qrCode, err = barcode.Scale(qrCode, 256, 256)
	if err != nil {
		logger.Error("Failed to scale QR code", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "QRコードの生成に失敗しました。", "", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		logger.Error("Failed to render QR code PNG", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "QRコードの生成に失敗しました。", "", err)
	}
	return buf.Bytes(), nil
}

// MarkAttendance はQRコードを検証し、当日1回だけ出席を記録します
func (s *attendanceService) MarkAttendance(ctx context.Context, req *model.MarkAttendanceRequest) (*model.MarkAttendanceResponse, error) {
	logger := middleware.GetLogger(ctx)

	today := s.now()
	if req.QRCode != dailyCode(today) {
		logger.Warn("Invalid attendance code", "student_id", req.StudentID)
		return nil, model.NewAppError("INVALID_QR_CODE", "QRコードが無効か、有効期限が切れています。", "qr_code", model.ErrInvalidInput)
	}

	var resp *model.MarkAttendanceResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		student, err := s.attendanceRepo.FindStudentByCode(ctx, tx, req.StudentID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Student not found", "student_id", req.StudentID)
				return model.NewAppError("STUDENT_NOT_FOUND", "指定された学籍番号が見つかりません。", "student_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		exists, err := s.attendanceRepo.ExistsForDate(ctx, tx, student.StudentID, today)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "出席確認に失敗しました。", "", err)
		}
		if exists {
			logger.Warn("Attendance already marked", "student_id", student.StudentID)
			return model.NewAppError("ALREADY_MARKED", "本日の出席は既に記録されています。", "", model.ErrConflict)
		}

		attendance := &model.Attendance{
			StudentID: student.StudentID,
			Timestamp: today,
		}
		if err := s.attendanceRepo.Create(ctx, tx, attendance); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "出席の記録に失敗しました。", "", err)
		}

		resp = &model.MarkAttendanceResponse{
			Message:     "出席を記録しました。",
			StudentName: student.Name,
			Timestamp:   attendance.Timestamp,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Attendance marked", "student_id", req.StudentID)
	return resp, nil
}
