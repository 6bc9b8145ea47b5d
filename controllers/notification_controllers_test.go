package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gotogether/server/models"
)

func TestNotificationLifecycleEndpoints(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	creator := seedUser(t, db, "creator@example.com", "Alice")
	requester := seedUser(t, db, "requester@example.com", "Bob")
	event := seedEvent(t, db, creator.ID, nil)

	// A join request produces the creator's notification.
	w := doRequest(t, r, "POST", "/join-requests", tokenFor(t, requester.ID), map[string]interface{}{
		"event_id": event.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, "GET", "/notifications", tokenFor(t, creator.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Notification `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	notif := resp.Data[0]
	assert.Equal(t, models.NotificationJoinRequest, notif.Type)
	assert.False(t, notif.IsRead)
	assert.NotNil(t, notif.Event)
	assert.Equal(t, event.Title, notif.Event.Title)

	// The requester has none.
	w = doRequest(t, r, "GET", "/notifications", tokenFor(t, requester.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "New Join Request")

	// Mark read.
	w = doRequest(t, r, "PATCH", "/notifications", tokenFor(t, creator.ID), map[string]interface{}{
		"ids": []uint{notif.ID},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Notification
	db.First(&stored, notif.ID)
	assert.True(t, stored.IsRead)

	// Empty id list is a validation error.
	w = doRequest(t, r, "PATCH", "/notifications", tokenFor(t, creator.ID), map[string]interface{}{
		"ids": []uint{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Another user cannot clear the creator's notification.
	w = doRequest(t, r, "DELETE", "/notifications/clear", tokenFor(t, requester.ID), map[string]interface{}{
		"ids": []uint{notif.ID},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// The owner can.
	w = doRequest(t, r, "DELETE", "/notifications/clear", tokenFor(t, creator.ID), map[string]interface{}{
		"ids": []uint{notif.ID},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	db.Model(&models.Notification{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	creator := seedUser(t, db, "creator@example.com", "Alice")
	requester := seedUser(t, db, "requester@example.com", "Bob")
	event := seedEvent(t, db, creator.ID, nil)

	doRequest(t, r, "POST", "/join-requests", tokenFor(t, requester.ID), map[string]interface{}{
		"event_id": event.ID,
	})

	w := doRequest(t, r, "GET", "/dashboard/stats", tokenFor(t, creator.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(1), data["events_created"])
	assert.Equal(t, float64(1), data["pending_requests"])
	assert.Equal(t, float64(1), data["unread_notifications"])
	assert.Equal(t, float64(0), data["events_joined"])
}
