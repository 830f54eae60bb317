package http

import (
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resumeUC "github.com/khoahotran/talent-profile/internal/application/usecase/resume"
	"github.com/khoahotran/talent-profile/internal/domain/resume"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

// Multipart overhead allowed on top of the resume size limit.
const multipartSlack = 1 << 20

type ResumeHandler struct {
	uploadResumeUC *resumeUC.UploadResumeUseCase
	logger         logger.Logger
}

func NewResumeHandler(uc *resumeUC.UploadResumeUseCase, log logger.Logger) *ResumeHandler {
	return &ResumeHandler{uploadResumeUC: uc, logger: log}
}

func (h *ResumeHandler) fail(c *gin.Context, err error) {
	c.JSON(apperror.ToHTTPStatus(err), UploadResumeResponse{Success: false, Error: apperror.UserMessage(err)})
}

func (h *ResumeHandler) UploadResume(c *gin.Context) {
	id, ok := GetIdentityFromGinContext(c)
	if !ok {
		h.fail(c, apperror.NewUnauthorized("identity not found in context", nil))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, resume.MaxSize+multipartSlack)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.fail(c, apperror.NewInvalidInput("'file' is required and must not exceed 10 MB", err))
		return
	}

	contentType, err := detectContentType(fileHeader)
	if err != nil {
		h.fail(c, apperror.NewInternal("failed to read file", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.fail(c, apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	input := resumeUC.UploadResumeInput{
		OwnerID: id.ID,
		File: resume.File{
			Name:        fileHeader.Filename,
			ContentType: contentType,
			Size:        fileHeader.Size,
			Content:     file,
		},
	}
	output, err := h.uploadResumeUC.Execute(c.Request.Context(), input)
	if err != nil {
		h.logger.Debug("Resume upload declined", zap.String("owner_id", id.ID.String()), zap.Error(err))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, UploadResumeResponse{Success: true, URL: output.URL, Key: output.Key})
}

// detectContentType trusts the part's declared type and sniffs the content
// only when the client did not declare one.
func detectContentType(fh *multipart.FileHeader) (string, error) {
	declared := fh.Header.Get("Content-Type")
	if declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
			return mediaType, nil
		}
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	mediaType, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return detected.String(), nil
	}
	return mediaType, nil
}
