package resume

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/talent-profile/pkg/apperror"
)

func TestValidate(t *testing.T) {
	ok := []File{
		{ContentType: MimePDF, Size: 1},
		{ContentType: MimeDOC, Size: MaxSize},
		{ContentType: MimeDOCX, Size: 0},
	}
	for _, f := range ok {
		assert.NoError(t, Validate(f), f.ContentType)
	}

	err := Validate(File{ContentType: "image/png", Size: 10})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Contains(t, apperror.UserMessage(err), "Invalid file type")

	err = Validate(File{ContentType: MimePDF, Size: MaxSize + 1})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Contains(t, apperror.UserMessage(err), "10 MB")

	// type is reported before size
	err = Validate(File{ContentType: "text/plain", Size: MaxSize * 2})
	assert.Contains(t, apperror.UserMessage(err), "Invalid file type")
}

func TestObjectKey(t *testing.T) {
	owner := uuid.MustParse("6f1c1a7e-8a39-4b34-9d1e-3b0a2f6d1c11")
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, owner.String()+"/1700000000123.pdf", ObjectKey(owner, now, "cv.pdf"))
	assert.Equal(t, owner.String()+"/1700000000123.docx", ObjectKey(owner, now, "My CV.DOCX"))
	assert.Equal(t, owner.String()+"/1700000000123", ObjectKey(owner, now, "resume"))
}

func TestOwnsKey(t *testing.T) {
	owner := uuid.New()
	assert.True(t, OwnsKey(owner, ObjectKey(owner, time.Now(), "a.pdf")))
	assert.False(t, OwnsKey(uuid.New(), ObjectKey(owner, time.Now(), "a.pdf")))
	assert.False(t, OwnsKey(owner, owner.String()))
	assert.False(t, OwnsKey(owner, owner.String()+"/"))
}
