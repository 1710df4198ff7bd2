package handlers

import (
	"net/http"

	"github.com/slabstech/flex-fit-server/internal/middleware"
	"github.com/slabstech/flex-fit-server/internal/service"
	"github.com/slabstech/flex-fit-server/internal/webutil"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: s}
}

// GetDashboard はプロフィールと獲得済みバッジをまとめて返します
func (h *ProfileHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, dashboard, logger)
}

// GetGamificationStatus は現在のXP・レベル・次レベルまでの残りXPを返します
func (h *ProfileHandler) GetGamificationStatus(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	status, err := h.service.GetGamificationStatus(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, status, logger)
}

// GetLeaderboard はXP降順の上位ユーザーを返します
func (h *ProfileHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	entries, err := h.service.GetLeaderboard(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, entries, logger)
}
