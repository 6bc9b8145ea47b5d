package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gotogether/server/models"
	"github.com/gotogether/server/utils"
	"gorm.io/gorm"
)

// JoinRequestService implements the join-request lifecycle: submit a
// request against an event, creator decision (approve/reject) with
// attendance materialization and capacity accounting, and withdrawal.
type JoinRequestService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewJoinRequestService(db *gorm.DB, notifier *NotificationService) *JoinRequestService {
	return &JoinRequestService{db: db, notifier: notifier}
}

// Submit creates a PENDING join request for (requesterID, eventID) and
// notifies the event creator. At most one request may exist per pair.
func (s *JoinRequestService) Submit(requesterID, eventID uint, message string) (*models.JoinRequest, error) {
	var request models.JoinRequest
	var creatorNotif models.Notification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.JoinRequest{}).
			Where("user_id = ? AND event_id = ?", requesterID, eventID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateRequest
		}

		request = models.JoinRequest{
			UserID:  requesterID,
			EventID: eventID,
			Message: message,
			Status:  models.RequestStatusPending,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		requesterName := "A user"
		var requester models.User
		if err := tx.First(&requester, requesterID).Error; err == nil && requester.Name != "" {
			requesterName = requester.Name
		}

		creatorNotif = models.Notification{
			UserID:    event.CreatorID,
			Type:      models.NotificationJoinRequest,
			Title:     "New Join Request",
			Message:   fmt.Sprintf("%s wants to join your event %q", requesterName, event.Title),
			EventID:   &event.ID,
			RequestID: &request.ID,
		}
		return tx.Create(&creatorNotif).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Push(creatorNotif)
	utils.InfoLogger.Printf("Join request %d created: user %d -> event %d", request.ID, requesterID, eventID)
	return &request, nil
}

// Decide lets the event creator approve or reject a pending request.
// The whole chain (status update, stale notification cleanup, outcome
// notification, attendance materialization, spots-left accounting) runs
// in one transaction so concurrent approvals cannot race on capacity.
func (s *JoinRequestService) Decide(deciderID, requestID uint, status string) (*models.JoinRequest, error) {
	if status != models.RequestStatusApproved && status != models.RequestStatusRejected {
		return nil, ErrInvalidStatus
	}

	var request models.JoinRequest
	var outcomeNotif models.Notification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Event").Preload("User").First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if request.Event.CreatorID != deciderID {
			return ErrNotEventCreator
		}

		if err := tx.Model(&request).Update("status", status).Error; err != nil {
			return err
		}
		request.Status = status

		// The original creator-facing prompt is resolved; remove it.
		if err := tx.Where("request_id = ? AND type = ?", request.ID, models.NotificationJoinRequest).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		outcomeNotif = models.Notification{
			UserID:    request.UserID,
			EventID:   &request.EventID,
			RequestID: &request.ID,
		}
		if status == models.RequestStatusApproved {
			outcomeNotif.Type = models.NotificationRequestApproved
			outcomeNotif.Title = "Request Approved"
			outcomeNotif.Message = fmt.Sprintf("Your request to join %q has been approved!", request.Event.Title)
		} else {
			outcomeNotif.Type = models.NotificationRequestRejected
			outcomeNotif.Title = "Request Rejected"
			outcomeNotif.Message = fmt.Sprintf("Your request to join %q has been rejected.", request.Event.Title)
		}
		if err := tx.Create(&outcomeNotif).Error; err != nil {
			return err
		}

		if status == models.RequestStatusApproved {
			return s.materializeAttendance(tx, &request, &outcomeNotif)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Push(outcomeNotif)
	return &request, nil
}

// materializeAttendance creates the EventAttendance row for an approved
// request, once. Re-approving an already approved request finds the
// existing row and does nothing. When a fresh row is created for a
// capacity-limited event, the remaining spots are attached to the
// requester's notification.
func (s *JoinRequestService) materializeAttendance(tx *gorm.DB, request *models.JoinRequest, notif *models.Notification) error {
	var existing int64
	if err := tx.Model(&models.EventAttendance{}).
		Where("user_id = ? AND event_id = ?", request.UserID, request.EventID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	attendance := models.EventAttendance{
		UserID:   request.UserID,
		EventID:  request.EventID,
		Attended: false,
	}
	if err := tx.Create(&attendance).Error; err != nil {
		return err
	}

	if request.Event.Capacity == nil {
		return nil
	}

	var attendees int64
	if err := tx.Model(&models.EventAttendance{}).
		Where("event_id = ?", request.EventID).
		Count(&attendees).Error; err != nil {
		return err
	}

	// Not clamped: over-approval reports a negative value as computed.
	spotsLeft := *request.Event.Capacity - int(attendees)
	payload, err := json.Marshal(map[string]int{
		"spotsLeft":     spotsLeft,
		"totalCapacity": *request.Event.Capacity,
	})
	if err != nil {
		return err
	}

	notif.Data = string(payload)
	return tx.Model(notif).Update("data", notif.Data).Error
}

// Withdraw deletes a join request. Only the requester themselves or the
// event creator may do so.
func (s *JoinRequestService) Withdraw(callerID, requestID uint) error {
	var request models.JoinRequest
	if err := s.db.Preload("Event").First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if request.UserID != callerID && request.Event.CreatorID != callerID {
		return ErrNotAuthorized
	}

	return s.db.Delete(&request).Error
}
