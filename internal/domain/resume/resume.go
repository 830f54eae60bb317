package resume

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/talent-profile/pkg/apperror"
)

const MaxSize int64 = 10 * 1024 * 1024

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var allowedMimeTypes = map[string]struct{}{
	MimePDF:  {},
	MimeDOC:  {},
	MimeDOCX: {},
}

// File is a candidate resume handed to the upload operation.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

func AllowedMimeType(contentType string) bool {
	_, ok := allowedMimeTypes[contentType]
	return ok
}

// Validate checks type before size; neither check touches the content.
func Validate(f File) error {
	if !AllowedMimeType(f.ContentType) {
		return apperror.NewInvalidInput("Invalid file type. Please upload a PDF or Word document.", nil)
	}
	if f.Size > MaxSize {
		return apperror.NewInvalidInput(fmt.Sprintf("File too large. Maximum size is %d MB.", MaxSize>>20), nil)
	}
	return nil
}

// ObjectKey returns "<owner>/<unix millis>.<ext>".
func ObjectKey(ownerID uuid.UUID, now time.Time, filename string) string {
	key := fmt.Sprintf("%s/%d", ownerID, now.UnixMilli())
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		key += "." + strings.ToLower(ext)
	}
	return key
}

// OwnsKey reports whether the first path segment of key is ownerID.
func OwnsKey(ownerID uuid.UUID, key string) bool {
	owner, rest, ok := strings.Cut(key, "/")
	return ok && rest != "" && owner == ownerID.String()
}
