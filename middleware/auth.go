package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SirTebz/CommunityNoticeboard/metrics"
	"github.com/SirTebz/CommunityNoticeboard/services"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

const (
	// ContextActorKey stores the resolved services.Actor inside Gin context.
	ContextActorKey = "actor"
	// ContextClaimsKey stores the parsed *utils.Claims inside Gin context.
	ContextClaimsKey = "claims"
)

// ActorLoader resolves the current identity and roles of a user id.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID string) (services.Actor, error)
}

type authFailure struct {
	status  int
	code    int
	message string
}

// AuthRequired ensures the request carries a valid bearer token for an existing user.
func AuthRequired(users ActorLoader) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}
		if f := authenticate(ctx, users); f != nil {
			utils.Error(ctx, f.status, f.code, f.message)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// AuthOptional resolves the actor when a token is present and lets anonymous
// requests through. A present but invalid token is still rejected.
func AuthOptional(users ActorLoader) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") == "" {
			ctx.Next()
			return
		}
		if f := authenticate(ctx, users); f != nil {
			utils.Error(ctx, f.status, f.code, f.message)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// AdminRequired rejects actors without the Admin role. Use after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !CurrentActor(ctx).IsAdmin() {
			utils.Error(ctx, http.StatusForbidden, 40301, "admin role required")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func authenticate(ctx *gin.Context, users ActorLoader) *authFailure {
	parts := strings.SplitN(ctx.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return &authFailure{http.StatusUnauthorized, 40102, "invalid authorization header format"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return &authFailure{http.StatusUnauthorized, 40103, "empty bearer token"}
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
		return &authFailure{http.StatusUnauthorized, 40105, "invalid token"}
	}
	if utils.IsTokenRevoked(ctx.Request.Context(), claims.ID) {
		metrics.AuthFailuresTotal.WithLabelValues("revoked").Inc()
		return &authFailure{http.StatusUnauthorized, 40104, "token revoked"}
	}

	// roles are looked up on every request, never taken from the token
	actor, err := users.LoadActor(ctx.Request.Context(), claims.Subject)
	if errors.Is(err, services.ErrNotFound) {
		metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
		return &authFailure{http.StatusUnauthorized, 40106, "user no longer exists"}
	}
	if err != nil {
		utils.Logger.Error("load actor failed", zap.String("user_id", claims.Subject), zap.Error(err))
		return &authFailure{http.StatusInternalServerError, 50101, "failed to resolve identity"}
	}

	ctx.Set(ContextActorKey, actor)
	ctx.Set(ContextClaimsKey, claims)
	return nil
}

// CurrentActor returns the resolved actor, or the anonymous actor.
func CurrentActor(ctx *gin.Context) services.Actor {
	if v, ok := ctx.Get(ContextActorKey); ok {
		if actor, ok := v.(services.Actor); ok {
			return actor
		}
	}
	return services.Actor{}
}

// CurrentClaims returns the token claims of an authenticated request.
func CurrentClaims(ctx *gin.Context) (*utils.Claims, bool) {
	v, ok := ctx.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
