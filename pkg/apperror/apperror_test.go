package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewInvalidInput("bad file", nil), http.StatusBadRequest},
		{NewUnauthorized("no identity", nil), http.StatusUnauthorized},
		{NewPermissionDenied("not yours"), http.StatusForbidden},
		{NewNotFound("profile", "x"), http.StatusNotFound},
		{NewConflict("resume", "key", "k"), http.StatusConflict},
		{NewInternal("db down", errors.New("boom")), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NewInvalidInput("x", nil)), http.StatusBadRequest},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToHTTPStatus(tc.err), tc.err.Error())
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "file too large", UserMessage(NewInvalidInput("file too large", nil)))
	assert.Equal(t, "upload failed: quota exceeded",
		UserMessage(fmt.Errorf("ctx: %w", NewInternal("upload failed", errors.New("quota exceeded")))))
	assert.Equal(t, "Authentication required", UserMessage(&AppError{BaseError: ErrUnauthorized, Message: "Authentication required"}))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}
