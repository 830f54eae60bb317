package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/talent-profile/internal/domain/identity"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

type Handlers struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Resume  *ResumeHandler
}

func NewRouter(h Handlers, resolver identity.Resolver, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), ErrorMiddleware(log))
	router.MaxMultipartMemory = 8 << 20

	authMiddleware := AuthMiddleware(resolver, log)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.POST("/auth/sign-out", h.Auth.SignOut)

			private.GET("/profile", h.Profile.GetProfile)
			private.PUT("/profile", h.Profile.SaveProfile)
			private.POST("/profile/resume", h.Resume.UploadResume)
		}
	}

	return router
}
