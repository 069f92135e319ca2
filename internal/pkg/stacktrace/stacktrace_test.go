package stacktrace

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {

	t.Run("FiltersInternalFrames", func(t *testing.T) {

		// Arrange
		stack := []byte(`goroutine 1 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/mailbridge/internal/mailer/usecase.(*Usecase).Route(...)
	/app/internal/mailer/usecase/route.go:42 +0x1f
net/http.HandlerFunc.ServeHTTP(...)
	/usr/local/go/src/net/http/server.go:2220 +0x29
	/app/internal/pkg/router/middleware_recover.go:31
`)

		// Act
		paths := InternalPaths(stack)

		// Assert
		assert.Equal(t, []string{
			"internal/mailer/usecase/route.go:42",
			"internal/pkg/router/middleware_recover.go:31",
		}, paths)
	})

	t.Run("RealStackHasNoExternalFrames", func(t *testing.T) {

		// Act
		paths := InternalPaths(debug.Stack())

		// Assert
		for _, p := range paths {
			assert.Contains(t, p, "internal/")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, InternalPaths(nil))
	})
}
