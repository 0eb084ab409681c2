package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err            error
		expectedStatus int
	}{
		{ErrCarNotFound, http.StatusNotFound},
		{ErrCategoryNotFound, http.StatusNotFound},
		{ErrCustomerNotFound, http.StatusNotFound},
		{ErrManagerNotFound, http.StatusNotFound},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrEmailExists, http.StatusBadRequest},
		{ErrEmployeeIDExists, http.StatusBadRequest},
		{ErrCategoryNameExists, http.StatusBadRequest},
		{ErrCategoryInUse, http.StatusBadRequest},
		{ErrCurrentPasswordRequired, http.StatusBadRequest},
		{ErrCurrentPasswordInvalid, http.StatusBadRequest},
		{ErrInvalidCarData, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrInvalidRefreshToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.err.Error(), httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("load car: %w", ErrCarNotFound)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestMapErrorToHTTP_UnknownError(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	// internal detail never leaks to the client
	assert.Equal(t, "internal server error", httpErr.Message)
}
