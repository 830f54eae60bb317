package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/talent-profile/internal/application/usecase/session"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

type AuthHandler struct {
	signOutUseCase *session.SignOutUseCase
	logger         logger.Logger
}

func NewAuthHandler(signOutUC *session.SignOutUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		signOutUseCase: signOutUC,
		logger:         log,
	}
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	token, ok := GetTokenFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("token not found in context", nil))
		return
	}

	if err := h.signOutUseCase.Execute(c.Request.Context(), session.SignOutInput{Token: token}); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
