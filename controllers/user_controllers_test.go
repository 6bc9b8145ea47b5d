package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gotogether/server/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doRequest(t, r, "POST", "/register", "", map[string]interface{}{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate email.
	w = doRequest(t, r, "POST", "/register", "", map[string]interface{}{
		"email":    "alice@example.com",
		"name":     "Alice Again",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Username defaults to the email local part.
	var user models.User
	db.Where("email = ?", "alice@example.com").First(&user)
	assert.Equal(t, "alice", user.Username)

	// Wrong password.
	w = doRequest(t, r, "POST", "/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, "POST", "/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)

	// The token works against a protected route.
	w = doRequest(t, r, "GET", "/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Logout revokes it.
	w = doRequest(t, r, "POST", "/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, r, "GET", "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOAuthUpsert(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doRequest(t, r, "POST", "/auth/oauth", "", map[string]interface{}{
		"email":       "bob@example.com",
		"name":        "Bob",
		"image":       "https://example.com/bob.png",
		"provider":    "google",
		"provider_id": "google-123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, db.Where("email = ?", "bob@example.com").First(&user).Error)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, "google", user.Provider)

	// Second sign-in updates in place rather than duplicating.
	w = doRequest(t, r, "POST", "/auth/oauth", "", map[string]interface{}{
		"email": "bob@example.com",
		"name":  "Robert",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Where("email = ?", "bob@example.com").First(&user)
	assert.Equal(t, "Robert", user.Name)
}

func TestProfileUpdate(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	user := seedUser(t, db, "carol@example.com", "Carol")
	token := tokenFor(t, user.ID)

	w := doRequest(t, r, "PUT", "/profile", token, map[string]interface{}{
		"bio":       "I like hiking",
		"age":       29,
		"location":  "Doha",
		"interests": []string{"hiking", "yoga"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	db.First(&stored, user.ID)
	assert.True(t, stored.ProfileComplete)
	assert.Equal(t, "I like hiking", stored.Bio)
	assert.Equal(t, models.StringList{"hiking", "yoga"}, stored.Interests)
	assert.Equal(t, 29, *stored.Age)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Carol", stored.Name)

	// Taking another user's username is a conflict.
	seedUser(t, db, "dave@example.com", "Dave")
	w = doRequest(t, r, "PUT", "/profile", token, map[string]interface{}{
		"username": "dave",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPublicUserRoutes(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")
	seedEvent(t, db, alice.ID, nil)

	token := tokenFor(t, bob.ID)

	w := doRequest(t, r, "GET", fmt.Sprintf("/users/%d", alice.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	// No credential material in a public profile.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "alice@example.com")

	w = doRequest(t, r, "GET", fmt.Sprintf("/users/%d/events", alice.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tech Meetup")

	w = doRequest(t, r, "GET", "/users/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
