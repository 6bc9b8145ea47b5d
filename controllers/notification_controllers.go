package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotogether/server/middlewares"
	"github.com/gotogether/server/services"
	"github.com/gotogether/server/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB      *gorm.DB
	Service *services.NotificationService
}

func NewNotificationController(db *gorm.DB, service *services.NotificationService) *NotificationController {
	return &NotificationController{DB: db, Service: service}
}

// GetNotifications -> GET /notifications
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	notifs, err := nc.Service.ListForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}

// MarkNotificationsRead -> PATCH /notifications
func (nc *NotificationController) MarkNotificationsRead(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		IDs []uint `json:"ids" binding:"required,min=1"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("notification ids are required"))
		return
	}

	if err := nc.Service.MarkRead(userID, req.IDs); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications marked as read", nil)
}

// ClearNotifications -> DELETE /notifications/clear
func (nc *NotificationController) ClearNotifications(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		IDs []uint `json:"ids" binding:"required,min=1"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("notification ids are required"))
		return
	}

	if err := nc.Service.Clear(userID, req.IDs); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications cleared", nil)
}
