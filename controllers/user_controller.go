package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SirTebz/CommunityNoticeboard/middleware"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

// UserController exposes account administration.
type UserController struct {
	users UserService
}

// NewUserController creates a UserController.
func NewUserController(users UserService) *UserController {
	return &UserController{users: users}
}

// DeleteUser removes an account. Refused while the user still has comments.
func (u *UserController) DeleteUser(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if err := u.users.Delete(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		respondError(ctx, err, "user")
		return
	}
	utils.Success(ctx, gin.H{"message": "user deleted"})
}
