// internal/service/attendance_service_test.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"testing"
	"time"

	"github.com/slabstech/flex-fit-server/internal/model"
	"github.com/slabstech/flex-fit-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBAttendance(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for attendance service testing: " + err.Error())
	}
	err = db.AutoMigrate(&model.Student{}, &model.Attendance{})
	if err != nil {
		panic("failed to migrate database for attendance service testing: " + err.Error())
	}
	return db
}

func newTestAttendanceService(db *gorm.DB, now func() time.Time) *attendanceService {
	svc := NewAttendanceService(db, repository.NewGormAttendanceRepository()).(*attendanceService)
	svc.now = now
	return svc
}

func Test_attendanceService_TodayCode(t *testing.T) {
	db := setupTestDBAttendance(t)
	day := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc := newTestAttendanceService(db, func() time.Time { return day })

	code := svc.TodayCode(context.Background())
	assert.Equal(t, "ATTEND-2025-06-01", code.Code)
	assert.Equal(t, "2025-06-01", code.Date)
}

func Test_attendanceService_TodayCodePNG(t *testing.T) {
	db := setupTestDBAttendance(t)
	day := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc := newTestAttendanceService(db, func() time.Time { return day })

	img, err := svc.TodayCodePNG(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, img)

	// 有効なPNGであり、スケール後のサイズになっていること
	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, 256, decoded.Bounds().Dx())
	assert.Equal(t, 256, decoded.Bounds().Dy())
}

func Test_attendanceService_MarkAttendance(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		req      *model.MarkAttendanceRequest
		seed     func(t *testing.T, db *gorm.DB, svc *attendanceService)
		wantErr  error
		wantName string
	}{
		{
			name: "正常系: 出席記録成功",
			req:  &model.MarkAttendanceRequest{StudentID: "S001", QRCode: "ATTEND-2025-06-01"},
			seed: func(t *testing.T, db *gorm.DB, svc *attendanceService) {
				require.NoError(t, db.Create(&model.Student{StudentID: "S001", Name: "山田太郎"}).Error)
			},
			wantErr:  nil,
			wantName: "山田太郎",
		},
		{
			name: "異常系: QRコードが当日のものではない",
			req:  &model.MarkAttendanceRequest{StudentID: "S001", QRCode: "ATTEND-2025-05-31"},
			seed: func(t *testing.T, db *gorm.DB, svc *attendanceService) {
				require.NoError(t, db.Create(&model.Student{StudentID: "S001", Name: "山田太郎"}).Error)
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name:    "異常系: 学籍番号が存在しない",
			req:     &model.MarkAttendanceRequest{StudentID: "S999", QRCode: "ATTEND-2025-06-01"},
			seed:    func(t *testing.T, db *gorm.DB, svc *attendanceService) {},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: 同日2回目の出席",
			req:  &model.MarkAttendanceRequest{StudentID: "S001", QRCode: "ATTEND-2025-06-01"},
			seed: func(t *testing.T, db *gorm.DB, svc *attendanceService) {
				require.NoError(t, db.Create(&model.Student{StudentID: "S001", Name: "山田太郎"}).Error)
				_, err := svc.MarkAttendance(ctx, &model.MarkAttendanceRequest{StudentID: "S001", QRCode: "ATTEND-2025-06-01"})
				require.NoError(t, err)
			},
			wantErr: model.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDBAttendance(t)
			svc := newTestAttendanceService(db, func() time.Time { return day })
			tt.seed(t, db, svc)

			resp, err := svc.MarkAttendance(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, tt.wantName, resp.StudentName)
				assert.Equal(t, day, resp.Timestamp)
			}
		})
	}
}

func Test_attendanceService_MarkAttendance_NextDayAllowedAgain(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBAttendance(t)
	require.NoError(t, db.Create(&model.Student{StudentID: "S001", Name: "山田太郎"}).Error)

	day1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(db, func() time.Time { return day1 })

	_, err := svc.MarkAttendance(ctx, &model.MarkAttendanceRequest{StudentID: "S001", QRCode: "ATTEND-2025-06-01"})
	require.NoError(t, err)

	// 翌日は新しいコードで再び記録できる
	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	resp, err := svc.MarkAttendance(ctx, &model.MarkAttendanceRequest{StudentID: "S001", QRCode: "ATTEND-2025-06-02"})
	require.NoError(t, err)
	assert.Equal(t, "山田太郎", resp.StudentName)
}
