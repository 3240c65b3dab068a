package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SirTebz/CommunityNoticeboard/middleware"
	"github.com/SirTebz/CommunityNoticeboard/models"
	"github.com/SirTebz/CommunityNoticeboard/services"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

// UserService is the part of services.UserService the controllers need.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, login, password string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, actor services.Actor, userID string) error
}

// AuthController handles local registration, login and logout.
type AuthController struct {
	users UserService
}

// NewAuthController creates an AuthController.
func NewAuthController(users UserService) *AuthController {
	return &AuthController{users: users}
}

// Register creates a local account and logs it in.
func (a *AuthController) Register(ctx *gin.Context) {
	var req services.RegisterInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}
	user, err := a.users.Register(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	a.issueToken(ctx, user, http.StatusCreated)
}

// Login exchanges a username-or-email and password for a bearer token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid request payload")
		return
	}
	user, err := a.users.Authenticate(ctx.Request.Context(), req.Login, req.Password)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	a.issueToken(ctx, user, http.StatusOK)
}

// Logout revokes the presented token until it expires.
func (a *AuthController) Logout(ctx *gin.Context) {
	claims, ok := middleware.CurrentClaims(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}
	expiresAt := time.Now().Add(utils.TokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := utils.RevokeToken(ctx.Request.Context(), claims.ID, expiresAt); err != nil {
		utils.Logger.Error("revoke token failed", zap.String("jti", claims.ID), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to revoke token")
		return
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	user, err := a.users.Get(ctx.Request.Context(), middleware.CurrentActor(ctx).ID)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	utils.Success(ctx, gin.H{"user": userResponse(user)})
}

func (a *AuthController) issueToken(ctx *gin.Context, user *models.User, status int) {
	token, claims, err := utils.GenerateToken(user.ID, user.Username, utils.TokenTTL)
	if err != nil {
		utils.Logger.Error("generate token failed", zap.String("user_id", user.ID), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to generate token")
		return
	}
	utils.Respond(ctx, status, 0, "success", gin.H{
		"token":      token,
		"expires_at": claims.ExpiresAt.Time,
		"user":       userResponse(user),
	})
}

func userResponse(user *models.User) gin.H {
	roles := user.RoleNames()
	actor := services.Actor{ID: user.ID, Roles: roles}
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"roles":      roles,
		"is_admin":   actor.IsAdmin(),
		"created_at": user.CreatedAt,
	}
}
