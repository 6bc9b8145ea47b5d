package services

import (
	"github.com/gotogether/server/models"
	"github.com/gotogether/server/realtime"
	"github.com/gotogether/server/utils"
	"gorm.io/gorm"
)

// NotificationService owns the Notification rows: single-insert emit,
// recipient-scoped mark-read and clear. No dedup, no batching, no retry.
type NotificationService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewNotificationService(db *gorm.DB, hub *realtime.Hub) *NotificationService {
	return &NotificationService{db: db, hub: hub}
}

// Notify inserts one notification row and pushes it to the recipient's
// open websockets. The push is best effort and never fails the caller.
func (ns *NotificationService) Notify(notif *models.Notification) error {
	if err := ns.db.Create(notif).Error; err != nil {
		return err
	}
	ns.Push(*notif)
	return nil
}

// Push forwards an already persisted notification to the realtime hub.
func (ns *NotificationService) Push(notif models.Notification) {
	if ns.hub != nil {
		ns.hub.PushNotification(notif)
	}
}

// ListForUser returns the recipient's notifications, newest first, with
// the referenced event and join request embedded.
func (ns *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	var notifs []models.Notification
	err := ns.db.
		Preload("Event").
		Preload("Request").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifs).Error
	return notifs, err
}

// MarkRead flips is_read on the given notifications. The update is
// scoped to the recipient, so ids owned by someone else are silently
// ignored rather than rejected.
func (ns *NotificationService) MarkRead(userID uint, ids []uint) error {
	return ns.db.Model(&models.Notification{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Update("is_read", true).Error
}

// Clear deletes the given notifications, scoped to the recipient.
func (ns *NotificationService) Clear(userID uint, ids []uint) error {
	if err := ns.db.
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Cleared %d notification(s) for user %d", len(ids), userID)
	return nil
}
