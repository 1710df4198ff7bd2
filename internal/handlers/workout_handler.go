package handlers

import (
	"errors"
	"net/http"

	"github.com/slabstech/flex-fit-server/internal/middleware"
	"github.com/slabstech/flex-fit-server/internal/model"
	"github.com/slabstech/flex-fit-server/internal/service"
	"github.com/slabstech/flex-fit-server/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type WorkoutHandler struct {
	service service.WorkoutService
}

func NewWorkoutHandler(s service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: s}
}

// LogWorkout はワークアウトを1件記録し、ゲーミフィケーションの結果を返します
func (h *WorkoutHandler) LogWorkout(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.LogWorkoutRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode workout request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for workout", "errors", validationErrors.Error())
			appErr := webutil.NewValidationErrorResponse(validationErrors)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation for workout", "error", err)
			webutil.HandleError(w, logger, err)
		}
		return
	}

	resp, err := h.service.LogWorkout(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

// GetHistory は認証済みユーザーのワークアウト履歴を返します
func (h *WorkoutHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	workouts, err := h.service.GetHistory(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, workouts, logger)
}
