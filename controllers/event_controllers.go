package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gotogether/server/middlewares"
	"github.com/gotogether/server/models"
	"github.com/gotogether/server/utils"
	"gorm.io/gorm"
)

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

// GetAllEvents -> GET /events, optional category and search filters.
func (ec *EventController) GetAllEvents(c *gin.Context) {
	query := ec.DB.Preload("Creator").Order("date ASC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR location LIKE ?", like, like, like)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All events", events)
}

// CreateEvent -> POST /events
func (ec *EventController) CreateEvent(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Date        string   `json:"date" binding:"required"`
		Time        string   `json:"time"`
		Location    string   `json:"location" binding:"required"`
		Category    string   `json:"category"`
		Price       *float64 `json:"price"`
		Capacity    *int     `json:"capacity"`
		ImageURL    string   `json:"image_url"`
		ExternalURL string   `json:"external_url"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date format"))
		return
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		Price:       req.Price,
		Capacity:    req.Capacity,
		ImageURL:    req.ImageURL,
		ExternalURL: req.ExternalURL,
		CreatorID:   userID,
	}

	if err := ec.DB.Create(&event).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Event %d created by user %d: %s", event.ID, userID, event.Title)
	utils.RespondJSON(c, http.StatusCreated, "Event created", event)
}

// GetEventByID -> GET /events/:event_id
func (ec *EventController) GetEventByID(c *gin.Context) {
	event, ok := ec.loadEvent(c)
	if !ok {
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Event detail", event)
}

// UpdateEvent -> PATCH /events/:event_id, creator only.
func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	event, ok := ec.loadEvent(c)
	if !ok {
		return
	}
	if event.CreatorID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("you are not authorized to edit this event"))
		return
	}

	type request struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Date        *string  `json:"date"`
		Time        *string  `json:"time"`
		Location    *string  `json:"location"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Capacity    *int     `json:"capacity"`
		ImageURL    *string  `json:"image_url"`
		ExternalURL *string  `json:"external_url"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date format"))
			return
		}
		updates["date"] = date
	}
	if req.Time != nil {
		updates["time"] = *req.Time
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.ExternalURL != nil {
		updates["external_url"] = *req.ExternalURL
	}

	if err := ec.DB.Model(event).Updates(updates).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Event updated", event)
}

// DeleteEvent -> DELETE /events/:event_id, creator only. Join requests
// and notifications referencing the event go with it so no orphaned
// references remain.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	event, ok := ec.loadEvent(c)
	if !ok {
		return
	}
	if event.CreatorID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("you are not authorized to delete this event"))
		return
	}

	err := ec.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.JoinRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventAttendance{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Event %d deleted by user %d", event.ID, userID)
	utils.RespondJSON(c, http.StatusOK, "Event deleted", gin.H{"event_id": event.ID})
}

// GetJoinedEvents -> GET /events/joined, events where the caller has an
// attendance row, soonest first.
func (ec *EventController) GetJoinedEvents(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var events []models.Event
	err := ec.DB.
		Select("events.*").
		Joins("JOIN event_attendances ON event_attendances.event_id = events.id").
		Where("event_attendances.user_id = ?", userID).
		Preload("Creator").
		Order("events.date ASC").
		Find(&events).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Joined events", events)
}

// GetEventRequests -> GET /events/:event_id/requests, creator only.
// Pending requests come first, newest first within each group.
func (ec *EventController) GetEventRequests(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	event, ok := ec.loadEvent(c)
	if !ok {
		return
	}
	if event.CreatorID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("only the event creator may view requests"))
		return
	}

	var requests []models.JoinRequest
	err := ec.DB.
		Where("event_id = ?", event.ID).
		Preload("User").
		Order("CASE WHEN status = 'PENDING' THEN 0 ELSE 1 END, created_at DESC").
		Find(&requests).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Event requests", gin.H{"requests": requests})
}

// GetEventParticipants -> GET /events/:event_id/participants.
// Attendance rows only exist for approved requests, so every attendee
// is a participant; the creator is appended with an admin flag.
func (ec *EventController) GetEventParticipants(c *gin.Context) {
	event, ok := ec.loadEvent(c)
	if !ok {
		return
	}

	var attendances []models.EventAttendance
	if err := ec.DB.Where("event_id = ?", event.ID).Preload("User").Find(&attendances).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	participants := make([]map[string]interface{}, 0, len(attendances)+1)
	creatorListed := false
	for _, att := range attendances {
		p := att.User.PublicProfile()
		if att.UserID == event.CreatorID {
			p["isAdmin"] = true
			creatorListed = true
		}
		participants = append(participants, p)
	}

	if !creatorListed {
		var creator models.User
		if err := ec.DB.First(&creator, event.CreatorID).Error; err == nil {
			p := creator.PublicProfile()
			p["isAdmin"] = true
			participants = append(participants, p)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Event participants", gin.H{"participants": participants})
}

// loadEvent resolves :event_id, responding 400/404 itself on failure.
func (ec *EventController) loadEvent(c *gin.Context) (*models.Event, bool) {
	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid event id"))
		return nil, false
	}

	var event models.Event
	if err := ec.DB.Preload("Creator").First(&event, uint(eventID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("event not found"))
		} else {
			respondServiceError(c, err)
		}
		return nil, false
	}
	return &event, true
}

func parseEventDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}
