package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenericErrors_StatusCodes(t *testing.T) {
	cases := []struct {
		err    GenericError
		status int
		code   string
	}{
		{ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{NotFoundError("missing"), http.StatusNotFound, "NOT_FOUND_ERROR"},
		{ConflictError("dup"), http.StatusConflict, "CONFLICT_ERROR"},
		{UnavailableError("down"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode())
		assert.Equal(t, tc.code, tc.err.ErrCode())
	}
}

func TestGenericErrors_SurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create kabang: %w", ConflictError("bang already exists"))

	var generic GenericError
	assert.True(t, errors.As(wrapped, &generic))
	assert.Equal(t, http.StatusConflict, generic.StatusCode())
	assert.Equal(t, "bang already exists", generic.Error())
}
