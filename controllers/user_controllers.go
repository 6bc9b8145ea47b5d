package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gotogether/server/middlewares"
	"github.com/gotogether/server/models"
	"github.com/gotogether/server/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register -> POST /register
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
		return
	}

	username := req.Username
	if username == "" {
		username = strings.Split(req.Email, "@")[0]
	}

	user := models.User{
		Email:     req.Email,
		Username:  username,
		Name:      req.Name,
		Password:  string(hashed),
		Interests: models.StringList{},
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			utils.RespondError(c, http.StatusConflict, errors.New("username or email already exists"))
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)
	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{"user_id": user.ID})
}

// Login -> POST /login, returns a bearer token.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if user.Password == "" {
		// OAuth-only account, no local password to check.
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout -> POST /logout, revokes the presented token.
func (uc *UserController) Logout(c *gin.Context) {
	if token, exists := c.Get("token"); exists {
		utils.BlacklistToken(token.(string))
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// OAuthUser -> POST /auth/oauth. Upserts the user record for an
// identity asserted by the OAuth provider, keyed by email, and issues a
// session token. First sign-in creates the account with a default
// username derived from the email local part.
func (uc *UserController) OAuthUser(c *gin.Context) {
	type request struct {
		Email      string `json:"email" binding:"required,email"`
		Name       string `json:"name"`
		Image      string `json:"image"`
		Provider   string `json:"provider"`
		ProviderID string `json:"provider_id"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	err := uc.DB.Where("email = ?", req.Email).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name":        req.Name,
			"avatar":      req.Image,
			"provider":    req.Provider,
			"provider_id": req.ProviderID,
		}
		if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
			respondServiceError(c, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Email:      req.Email,
			Username:   strings.Split(req.Email, "@")[0],
			Name:       req.Name,
			Avatar:     req.Image,
			Provider:   req.Provider,
			ProviderID: req.ProviderID,
			Interests:  models.StringList{},
		}
		if err := uc.DB.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				utils.RespondError(c, http.StatusConflict, errors.New("username or email already exists"))
				return
			}
			respondServiceError(c, err)
			return
		}
	default:
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User created/updated successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile -> GET /profile
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile", user)
}

// UpdateProfile -> PUT /profile. Completing this form is what flips
// profile_complete; partial bodies leave the other fields alone.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		Name      *string   `json:"name"`
		Username  *string   `json:"username"`
		Bio       *string   `json:"bio"`
		Age       *int      `json:"age"`
		Location  *string   `json:"location"`
		Avatar    *string   `json:"avatar"`
		Interests *[]string `json:"interests"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
			return
		}
		respondServiceError(c, err)
		return
	}

	updates := map[string]interface{}{"profile_complete": true}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Interests != nil {
		updates["interests"] = models.StringList(*req.Interests)
	}

	if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			utils.RespondError(c, http.StatusConflict, errors.New("username or email already exists"))
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", user)
}

// GetUserByID -> GET /users/:user_id, public profile fields only.
func (uc *UserController) GetUserByID(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, uint(userID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User profile", user.PublicProfile())
}

// GetUserEvents -> GET /users/:user_id/events, events created by a user.
func (uc *UserController) GetUserEvents(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var events []models.Event
	if err := uc.DB.Where("creator_id = ?", uint(userID)).Order("date ASC").Find(&events).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User events", events)
}

// isUniqueViolation detects unique-index failures across the MySQL and
// SQLite drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
