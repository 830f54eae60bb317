package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/talent-profile/internal/application/usecase/profile"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

// GetProfile answers with the caller and their profile, or a null profile
// when none has been saved yet.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	token, ok := GetTokenFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("token not found in context", nil))
		return
	}

	output, err := h.profileUseCase.ExecuteLoadCurrent(c.Request.Context(), profileUC.LoadCurrentInput{Token: token})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, CurrentProfileResponse{
		Identity: ToIdentityDTO(output.Identity),
		Profile:  ToProfileDTO(output.Profile),
	})
}

func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	id, ok := GetIdentityFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("identity not found in context", nil))
		return
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	input := profileUC.SaveProfileInput{
		Identity: id,
		Fields:   req.ToDomainFields(),
	}
	output, err := h.profileUseCase.ExecuteSaveProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}
