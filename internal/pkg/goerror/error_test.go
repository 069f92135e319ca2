package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {

	t.Run("InvalidInputWrapsCause", func(t *testing.T) {

		// Arrange
		cause := errors.New("email is required")

		// Act
		err := NewInvalidInput(cause)

		// Assert
		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "Validation error", gerr.Msg())
		assert.Equal(t, TypeValidation, gerr.Type())
		assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode())
		assert.Equal(t, "email is required", gerr.Error())
	})

	t.Run("InvalidInputFields", func(t *testing.T) {

		// Act
		err := NewInvalidInput(nil, "email", "bad")

		// Assert
		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, map[string]string{"email": "bad"}, gerr.Fields())
		assert.Equal(t, "Validation error", gerr.Error())
	})

	t.Run("InvalidInputOddPairs", func(t *testing.T) {

		// Act
		err := NewInvalidInput(nil, "email")

		// Assert
		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, CodeInvalidFormat, gerr.Code())
		assert.Equal(t, http.StatusBadRequest, gerr.StatusCode())
	})

	t.Run("Unavailable", func(t *testing.T) {

		// Arrange
		cause := errors.New("no consumer")

		// Act
		err := NewUnavailable("mailer is not consuming", cause)

		// Assert
		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, http.StatusServiceUnavailable, gerr.StatusCode())
		assert.Equal(t, "ERROR_CODE_UNAVAILABLE", gerr.Code().String())
	})

	t.Run("ServerAndStrings", func(t *testing.T) {

		// Act
		err := NewServer(nil)

		// Assert
		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, "Internal server error", gerr.Error())
		assert.Equal(t, http.StatusInternalServerError, gerr.StatusCode())
		assert.Equal(t, "ERROR_TYPE_SERVER", gerr.Type().String())
		assert.Contains(t, gerr.String(), "ERROR_CODE_INTERNAL")
		assert.Equal(t, "ERROR_CODE_INTERNAL", Code(99).String())
	})
}
