package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/internal/model"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/pkg/jwtutil"
	"github.com/nkor5796/ecommerce-db-project/pkg/logger"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest defines the structure for user registration requests
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles creating a new user account
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Registering new user")

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Email == "" || req.Password == "" {
		log.Warn("Missing email or password")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create user"})
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if req.FirstName != "" || req.LastName != "" {
		user.Profile = &model.Profile{FirstName: req.FirstName, LastName: req.LastName}
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := database.GetDB().Create(&user)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"User with this email already exists", "Failed to create user")
	}

	prometheus.RecordEntityOperation("user", "create")
	log.Info("User registered successfully",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, user)
}

// Login handles user authentication and returns a JWT token
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Error("User not found", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if !user.IsActive {
		log.Warn("Login attempt for inactive user", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account is inactive"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate token"})
	}

	log.Info("User logged in", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// GetUser handles retrieving a single user by ID
func GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting user by ID", zap.String("user_id", id))

	var user model.User
	result := database.GetDB().Preload("Profile").Preload("Addresses").First(&user, id)
	if result.Error != nil {
		log.Error("User not found",
			zap.String("user_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// ListUsers handles retrieving all users
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing users")

	var users []model.User
	result := database.GetDB().Find(&users)
	if result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve users"})
	}

	log.Info("Users retrieved successfully", zap.Int("count", len(users)))
	return c.JSON(http.StatusOK, users)
}

// DeactivateUser handles flipping the active flag off for a user
func DeactivateUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deactivating user", zap.String("user_id", id))

	result := database.GetDB().Model(&model.User{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		log.Error("Failed to deactivate user",
			zap.String("user_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to deactivate user"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	prometheus.RecordEntityOperation("user", "deactivate")
	return c.JSON(http.StatusOK, echo.Map{"message": "User deactivated"})
}

// DeleteUser handles deleting a user. The profile and addresses cascade
// away and review references are nulled; the delete is refused while the
// user still has orders.
func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting user", zap.String("user_id", id))

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Delete(&model.User{}, id)
	if result.Error != nil {
		return constraintResponse(c, log, result.Error,
			"User has existing orders and cannot be deleted", "Failed to delete user")
	}
	if result.RowsAffected == 0 {
		log.Warn("User not found for deletion", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	prometheus.RecordEntityOperation("user", "delete")
	log.Info("User deleted successfully", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
