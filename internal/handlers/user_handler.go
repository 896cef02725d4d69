package handlers

import (
	"errors"
	"net/http"

	"mmry/internal/cache"
	"mmry/internal/database"
	"mmry/internal/models"

	"github.com/gin-gonic/gin"
	platformerrors "github.com/jmgilman/go/errors"
	"gorm.io/gorm"
)

// UserHandler serves user lookups. Lookups by ID are memoized in Users for TTL.
type UserHandler struct {
	Users *cache.Cache[models.UserResponse]
	TTL   string
}

// GetAllUsers returns all users (protected)
// GET /api/users
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	resp := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, u.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}

// GetUserByID returns a single user, served from the lookup cache when possible
// GET /api/users/:id
func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.Users.CacheFunctionE("user", findUser, []any{c.Param("id")}, h.TTL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func findUser(params ...any) (models.UserResponse, error) {
	id, _ := params[0].(string)

	var user models.User
	err := database.GetDB().Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserResponse{}, platformerrors.WithContext(
			platformerrors.New(platformerrors.CodeNotFound, "user not found"), "id", id)
	}
	if err != nil {
		return models.UserResponse{}, platformerrors.Wrap(err, platformerrors.CodeDatabase, "failed to fetch user")
	}
	return user.ToResponse(), nil
}
