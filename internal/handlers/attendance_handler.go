package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/slabstech/flex-fit-server/internal/middleware"
	"github.com/slabstech/flex-fit-server/internal/model"
	"github.com/slabstech/flex-fit-server/internal/service"
	"github.com/slabstech/flex-fit-server/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type AttendanceHandler struct {
	service service.AttendanceService
}

func NewAttendanceHandler(s service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: s}
}

// GetDailyCode は当日の出席コードを返します
func (h *AttendanceHandler) GetDailyCode(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	code := h.service.TodayCode(r.Context())
	webutil.RespondWithJSON(w, http.StatusOK, code, logger)
}

// GetDailyQR は当日コードのQRコードPNGを返します
func (h *AttendanceHandler) GetDailyQR(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	img, err := h.service.TodayCodePNG(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		logger.Error("Failed to write QR code response", "error", err)
	}
}

// MarkAttendance はQRコードを検証して出席を記録します
func (h *AttendanceHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.MarkAttendanceRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode attendance request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for attendance", "errors", validationErrors.Error())
			appErr := webutil.NewValidationErrorResponse(validationErrors)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation for attendance", "error", err)
			webutil.HandleError(w, logger, err)
		}
		return
	}

	resp, err := h.service.MarkAttendance(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}
