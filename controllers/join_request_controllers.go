package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gotogether/server/middlewares"
	"github.com/gotogether/server/models"
	"github.com/gotogether/server/services"
	"github.com/gotogether/server/utils"
	"gorm.io/gorm"
)

type JoinRequestController struct {
	DB      *gorm.DB
	Service *services.JoinRequestService
}

func NewJoinRequestController(db *gorm.DB, service *services.JoinRequestService) *JoinRequestController {
	return &JoinRequestController{DB: db, Service: service}
}

// CreateJoinRequest -> POST /join-requests
func (jc *JoinRequestController) CreateJoinRequest(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		EventID uint   `json:"event_id" binding:"required"`
		Message string `json:"message"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	joinRequest, err := jc.Service.Submit(userID, req.EventID, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Join request created", joinRequest)
}

// GetJoinRequests -> GET /join-requests
// Returns both sides for the caller: requests against events they
// created, and requests they made themselves. Optional event_id and
// status query filters apply to both lists.
func (jc *JoinRequestController) GetJoinRequests(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	applyFilters := func(q *gorm.DB) *gorm.DB {
		if eventID := c.Query("event_id"); eventID != "" {
			q = q.Where("join_requests.event_id = ?", eventID)
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("join_requests.status = ?", status)
		}
		return q
	}

	var createdEventsRequests []models.JoinRequest
	q := jc.DB.
		Select("join_requests.*").
		Joins("JOIN events ON events.id = join_requests.event_id").
		Where("events.creator_id = ?", userID).
		Preload("User").
		Preload("Event").
		Order("join_requests.created_at DESC")
	if err := applyFilters(q).Find(&createdEventsRequests).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var userRequests []models.JoinRequest
	q = jc.DB.
		Where("join_requests.user_id = ?", userID).
		Preload("Event").
		Preload("Event.Creator").
		Order("join_requests.created_at DESC")
	if err := applyFilters(q).Find(&userRequests).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Join requests", gin.H{
		"createdEventsRequests": createdEventsRequests,
		"userRequests":          userRequests,
	})
}

// DecideJoinRequest -> PATCH /join-requests/:request_id
func (jc *JoinRequestController) DecideJoinRequest(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid request id"))
		return
	}

	type request struct {
		Status string `json:"status" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	joinRequest, err := jc.Service.Decide(userID, uint(requestID), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Join request %d decided: %s by user %d", joinRequest.ID, joinRequest.Status, userID)
	utils.RespondJSON(c, http.StatusOK, "Join request updated", joinRequest)
}

// DeleteJoinRequest -> DELETE /join-requests/:request_id
func (jc *JoinRequestController) DeleteJoinRequest(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid request id"))
		return
	}

	if err := jc.Service.Withdraw(userID, uint(requestID)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Join request deleted", gin.H{"request_id": requestID})
}
