// internal/handlers/attendance_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slabstech/flex-fit-server/internal/handlers"
	"github.com/slabstech/flex-fit-server/internal/model"
	"github.com/slabstech/flex-fit-server/internal/service/mocks"
)

func TestAttendanceHandler_GetDailyCode(t *testing.T) {
	mockService := mocks.NewAttendanceService(t)
	mockService.On("TodayCode", mock.Anything).
		Return(&model.DailyCodeResponse{Code: "ATTEND-2025-06-01", Date: "2025-06-01"}).Once()

	handler := handlers.NewAttendanceHandler(mockService)
	router := chi.NewRouter()
	router.Get("/api/v1/attendance/code", handler.GetDailyCode)

	req := createRequest(t, "GET", "/api/v1/attendance/code", nil, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp model.DailyCodeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ATTEND-2025-06-01", resp.Code)
}

func TestAttendanceHandler_GetDailyQR(t *testing.T) {
	pngBytes := []byte{0x89, 0x50, 0x4E, 0x47} // PNGシグネチャ先頭

	mockService := mocks.NewAttendanceService(t)
	mockService.On("TodayCodePNG", mock.Anything).Return(pngBytes, nil).Once()

	handler := handlers.NewAttendanceHandler(mockService)
	router := chi.NewRouter()
	router.Get("/api/v1/attendance/qr", handler.GetDailyQR)

	req := createRequest(t, "GET", "/api/v1/attendance/qr", nil, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, pngBytes, rr.Body.Bytes())
}

func TestAttendanceHandler_MarkAttendance(t *testing.T) {
	validReqBody := model.MarkAttendanceRequest{
		StudentID: "S001",
		QRCode:    "ATTEND-2025-06-01",
	}
	expected := &model.MarkAttendanceResponse{
		Message:     "出席を記録しました。",
		StudentName: "山田太郎",
		Timestamp:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.AttendanceService)
		expectedStatus int
	}{
		{
			name: "正常系: 出席記録成功",
			body: validReqBody,
			setupMock: func(m *mocks.AttendanceService) {
				m.On("MarkAttendance", mock.Anything, &validReqBody).Return(expected, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "異常系: 学籍番号がない",
			body:           model.MarkAttendanceRequest{QRCode: "ATTEND-2025-06-01"},
			setupMock:      func(m *mocks.AttendanceService) { /* バリデーションで弾かれる */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "異常系: QRコードが無効",
			body: validReqBody,
			setupMock: func(m *mocks.AttendanceService) {
				m.On("MarkAttendance", mock.Anything, &validReqBody).
					Return(nil, model.NewAppError("INVALID_QR_CODE", "QRコードが無効か、有効期限が切れています。", "qr_code", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "異常系: 同日2回目の出席",
			body: validReqBody,
			setupMock: func(m *mocks.AttendanceService) {
				m.On("MarkAttendance", mock.Anything, &validReqBody).
					Return(nil, model.NewAppError("ALREADY_MARKED", "本日の出席は既に記録されています。", "", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := mocks.NewAttendanceService(t)
			tc.setupMock(mockService)

			handler := handlers.NewAttendanceHandler(mockService)
			router := chi.NewRouter()
			router.Post("/api/v1/attendance", handler.MarkAttendance)

			req := createRequest(t, "POST", "/api/v1/attendance", tc.body, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusCreated {
				var resp model.MarkAttendanceResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "山田太郎", resp.StudentName)
			}
		})
	}
}
