package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/pcist/pcist-backend/internal/config"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/types"
)

// AuthenticateMiddleware validates the Bearer JWT and sets the user id
// and role in the request context for downstream handlers.
func AuthenticateMiddleware(cfg *config.Configuration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := parseToken(cfg.Auth.Secret, tokenString)
		if err != nil {
			log.Debugw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		userID, _ := claims["id"].(string)
		role := roleFromClaims(claims)
		if userID == "" || !role.Validate() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, userID)
		ctx = context.WithValue(ctx, types.CtxUserRole, role)
		ctx = context.WithValue(ctx, types.CtxJWT, tokenString)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminOnlyMiddleware rejects requests whose token does not carry the
// admin role. It must run after AuthenticateMiddleware.
func AdminOnlyMiddleware(c *gin.Context) {
	if types.GetUserRole(c.Request.Context()) != types.RoleAdmin {
		c.Error(ierr.NewError("admin access required").
			WithHint("this endpoint is restricted to club admins").
			Mark(ierr.ErrPermissionDenied))
		c.Abort()
		return
	}
	c.Next()
}

func parseToken(secret, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewErrorf("unexpected signing method %v", t.Header["alg"]).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ierr.NewError("invalid token").Mark(ierr.ErrPermissionDenied)
	}
	return claims, nil
}

func roleFromClaims(claims jwt.MapClaims) types.Role {
	// JSON numbers decode as float64.
	if f, ok := claims["role"].(float64); ok {
		return types.Role(int(f))
	}
	return types.RoleUnknown
}
