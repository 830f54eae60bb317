package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/talent-profile/internal/domain/identity"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

const (
	GinContextKeyIdentity = "identity"
	GinContextKeyToken    = "token"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}
	return tokenString, true
}

func AuthMiddleware(resolver identity.Resolver, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		id, err := resolver.Resolve(c.Request.Context(), tokenString)
		if err != nil {
			status := apperror.ToHTTPStatus(err)
			if status != http.StatusUnauthorized {
				log.Error("Failed to resolve identity", err)
			}
			c.AbortWithStatusJSON(status, gin.H{"error": apperror.UserMessage(err)})
			return
		}

		c.Set(GinContextKeyIdentity, id)
		c.Set(GinContextKeyToken, tokenString)

		c.Next()
	}
}

func GetIdentityFromGinContext(c *gin.Context) (*identity.Identity, bool) {
	v, ok := c.Get(GinContextKeyIdentity)
	if !ok {
		return nil, false
	}
	id, ok := v.(*identity.Identity)
	return id, ok && id != nil
}

func GetTokenFromGinContext(c *gin.Context) (string, bool) {
	token := c.GetString(GinContextKeyToken)
	return token, token != ""
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, zap.String("path", c.FullPath()), zap.String("method", c.Request.Method))
		} else {
			log.Debug("Request rejected", zap.String("path", c.FullPath()), zap.Error(err))
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(status, appErr.ToJSON())
			return
		}
		c.JSON(status, gin.H{"error": apperror.ErrInternal.Error(), "message": apperror.UserMessage(err)})
	}
}
