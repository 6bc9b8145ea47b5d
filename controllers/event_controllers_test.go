package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gotogether/server/models"
)

func TestEventCRUD(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	creator := seedUser(t, db, "creator@example.com", "Alice")
	token := tokenFor(t, creator.ID)

	w := doRequest(t, r, "POST", "/events", token, map[string]interface{}{
		"title":       "Yoga in the Park",
		"description": "Bring your own mat",
		"date":        time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"time":        "08:00",
		"location":    "Riverside Park",
		"category":    "Fitness",
		"capacity":    20,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	eventID := uint(decodeData(t, w)["id"].(float64))

	// Missing required fields is a validation error.
	w = doRequest(t, r, "POST", "/events", token, map[string]interface{}{
		"title": "No description",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/events/%d", eventID)
	w = doRequest(t, r, "GET", path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Only the creator can edit.
	other := seedUser(t, db, "other@example.com", "Bob")
	w = doRequest(t, r, "PATCH", path, tokenFor(t, other.ID), map[string]interface{}{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, "PATCH", path, token, map[string]interface{}{
		"title": "Sunrise Yoga",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Event
	db.First(&stored, eventID)
	assert.Equal(t, "Sunrise Yoga", stored.Title)
}

func TestDeleteEventCascades(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	creator := seedUser(t, db, "creator@example.com", "Alice")
	requester := seedUser(t, db, "requester@example.com", "Bob")
	event := seedEvent(t, db, creator.ID, nil)

	w := doRequest(t, r, "POST", "/join-requests", tokenFor(t, requester.ID), map[string]interface{}{
		"event_id": event.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, "DELETE", fmt.Sprintf("/events/%d", event.ID), tokenFor(t, creator.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var requests, notifs int64
	db.Model(&models.JoinRequest{}).Where("event_id = ?", event.ID).Count(&requests)
	db.Model(&models.Notification{}).Where("event_id = ?", event.ID).Count(&notifs)
	assert.EqualValues(t, 0, requests)
	assert.EqualValues(t, 0, notifs)
}

func TestGetEventRequestsOrderingAndAuth(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	creator := seedUser(t, db, "creator@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")
	carol := seedUser(t, db, "carol@example.com", "Carol")
	event := seedEvent(t, db, creator.ID, nil)

	w := doRequest(t, r, "POST", "/join-requests", tokenFor(t, bob.ID), map[string]interface{}{
		"event_id": event.ID,
	})
	bobReqID := uint(decodeData(t, w)["id"].(float64))
	doRequest(t, r, "POST", "/join-requests", tokenFor(t, carol.ID), map[string]interface{}{
		"event_id": event.ID,
	})

	// Approve Bob's request so one of the two is no longer pending.
	doRequest(t, r, "PATCH", fmt.Sprintf("/join-requests/%d", bobReqID), tokenFor(t, creator.ID), map[string]interface{}{
		"status": models.RequestStatusApproved,
	})

	path := fmt.Sprintf("/events/%d/requests", event.ID)

	// Non-creator may not list requests.
	w = doRequest(t, r, "GET", path, tokenFor(t, bob.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, "GET", path, tokenFor(t, creator.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	requests := decodeData(t, w)["requests"].([]interface{})
	assert.Len(t, requests, 2)

	// Pending first.
	first := requests[0].(map[string]interface{})
	assert.Equal(t, models.RequestStatusPending, first["status"])
}

func TestGetEventParticipants(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	creator := seedUser(t, db, "creator@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")
	event := seedEvent(t, db, creator.ID, nil)

	w := doRequest(t, r, "POST", "/join-requests", tokenFor(t, bob.ID), map[string]interface{}{
		"event_id": event.ID,
	})
	requestID := uint(decodeData(t, w)["id"].(float64))
	doRequest(t, r, "PATCH", fmt.Sprintf("/join-requests/%d", requestID), tokenFor(t, creator.ID), map[string]interface{}{
		"status": models.RequestStatusApproved,
	})

	w = doRequest(t, r, "GET", fmt.Sprintf("/events/%d/participants", event.ID), tokenFor(t, bob.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	participants := decodeData(t, w)["participants"].([]interface{})
	assert.Len(t, participants, 2)

	// The creator is flagged as admin.
	var adminSeen bool
	for _, p := range participants {
		entry := p.(map[string]interface{})
		if entry["isAdmin"] == true {
			adminSeen = true
			assert.Equal(t, float64(creator.ID), entry["id"])
		}
	}
	assert.True(t, adminSeen)
}

func TestGetJoinedEvents(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	creator := seedUser(t, db, "creator@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")
	event := seedEvent(t, db, creator.ID, nil)

	// Nothing joined yet.
	w := doRequest(t, r, "GET", "/events/joined", tokenFor(t, bob.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	wReq := doRequest(t, r, "POST", "/join-requests", tokenFor(t, bob.ID), map[string]interface{}{
		"event_id": event.ID,
	})
	requestID := uint(decodeData(t, wReq)["id"].(float64))
	doRequest(t, r, "PATCH", fmt.Sprintf("/join-requests/%d", requestID), tokenFor(t, creator.ID), map[string]interface{}{
		"status": models.RequestStatusApproved,
	})

	w = doRequest(t, r, "GET", "/events/joined", tokenFor(t, bob.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), event.Title)
}
