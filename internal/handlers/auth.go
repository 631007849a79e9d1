// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/woocom/woocom-backend/internal/services"
	"github.com/woocom/woocom-backend/internal/utils"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// PUT /auth/user/:email
// Upserts the user on login and issues an access token.
func (h *AuthHandler) UpsertUser(c *gin.Context) {
	email := c.Param("email")

	resp, err := h.userService.UpsertUser(email)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"result": resp.User,
		"token":  resp.Token,
	})
}

// GET /auth/role/:email
func (h *AuthHandler) FetchRole(c *gin.Context) {
	email := c.Param("email")

	user, err := h.userService.GetUser(email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"role": user.Role})
}
