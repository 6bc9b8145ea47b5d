package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotogether/server/middlewares"
	"github.com/gotogether/server/models"
	"github.com/gotogether/server/utils"
	"gorm.io/gorm"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// GetDashboardStats -> GET /dashboard/stats, counters for the caller's
// dashboard.
func (sc *StatsController) GetDashboardStats(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var stats struct {
		EventsCreated       int64 `json:"events_created"`
		EventsJoined        int64 `json:"events_joined"`
		PendingRequests     int64 `json:"pending_requests"`
		UnreadNotifications int64 `json:"unread_notifications"`
	}

	if err := sc.DB.Model(&models.Event{}).
		Where("creator_id = ?", userID).
		Count(&stats.EventsCreated).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if err := sc.DB.Model(&models.EventAttendance{}).
		Where("user_id = ?", userID).
		Count(&stats.EventsJoined).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if err := sc.DB.Model(&models.JoinRequest{}).
		Joins("JOIN events ON events.id = join_requests.event_id").
		Where("events.creator_id = ? AND join_requests.status = ?", userID, models.RequestStatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if err := sc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&stats.UnreadNotifications).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
