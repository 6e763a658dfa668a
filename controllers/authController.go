package controllers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sokoni-store/sokoni-api/initializers"
	"github.com/sokoni-store/sokoni-api/models"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgUserCreated           = "User created successfully."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

// actorID extracts the authenticated admin's id from the JWT claims set by
// RequireAuth.
func actorID(ctx *gin.Context) uint {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return 0
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0
	}
	return uint(id)
}

func Signup(ctx *gin.Context) {
	var input struct {
		Fullname        string `json:"fullname"`
		Username        string `json:"username" binding:"required"`
		Email           string `json:"email" binding:"required,email"`
		Phone           string `json:"phone"`
		Password        string `json:"password" binding:"required,min=8"`
		SubscribeToNews bool   `json:"subscribeToNews"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing models.User
	result := initializers.DB.Where("email = ? OR username = ?", input.Email, input.Username).Find(&existing)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusConflict, msgUserAlreadyExists)
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Fullname:        input.Fullname,
		Username:        input.Username,
		Email:           input.Email,
		Phone:           input.Phone,
		Password:        hashed,
		Role:            models.RoleViewer,
		SubscribeToNews: input.SubscribeToNews,
	}
	if err := initializers.DB.Create(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "id": user.ID})
}

func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	err := initializers.DB.Where("email = ?", loginData.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, err := generateJWT(user)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	if err := Audit.Record(user.ID, "auth.login", "user", user.ID, nil, nil, user.Username+" logged in"); err != nil {
		Log.Warn("Audit write failed for login", zap.Uint("userId", user.ID), zap.Error(err))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
