package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/mailbridge/internal/pkg/mail/mailtest"
)

const testConfig = `
app:
  server:
    max_goroutine: 8
instrument:
  enabled: false
  log_level: error
  log_mask_fields: [password]
mail:
  driver: smtp
  host: %q
  port: %d
  from: "noreply@example.com"
messaging:
  driver: direct
modules:
  mailer:
    enabled: true
    consumer_names: [mailer_trigger_route]
`

func startApp(t *testing.T) (string, *mailtest.Server) {
	t.Helper()

	srv := mailtest.NewServer(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(testConfig, srv.Host(), srv.Port())), 0o600))
	t.Setenv("CONFIG_PATH", path)

	a := New()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	errCh := a.Serve(ln)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Stop(ctx)
		assert.ErrorIs(t, <-errCh, http.ErrServerClosed)
	})

	return "http://" + ln.Addr().String(), srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body)) //nolint:noctx // test client
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestApp(t *testing.T) {

	t.Run("Health", func(t *testing.T) {

		// Arrange
		base, _ := startApp(t)

		// Act
		resp, err := http.Get(base + "/health") //nolint:noctx // test client
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status":"ok"}`, string(body))
	})

	t.Run("TriggerRunsRoute", func(t *testing.T) {

		// Arrange
		base, srv := startApp(t)

		// Act
		var status int
		require.Eventually(t, func() bool {
			status = postJSON(t, base+"/api/v1/mailer/trigger", `{"to":"user@example.com","body":"Hello, world!"}`).StatusCode
			return status == http.StatusAccepted
		}, 2*time.Second, 10*time.Millisecond)

		// Assert
		msgs := srv.Messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, []string{"user@example.com"}, msgs[0].To)
		assert.Equal(t, "Hello, world!", msgs[0].Body)
	})

	t.Run("Notify", func(t *testing.T) {

		// Arrange
		base, srv := startApp(t)

		// Act
		resp := postJSON(t, base+"/api/v1/mailer/notify", `{"email":"user@example.com","content":"Hello, world!"}`)

		// Assert
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		msgs := srv.Messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "person@example.com", msgs[0].From)
	})

	t.Run("NotifyValidation", func(t *testing.T) {

		// Arrange
		base, srv := startApp(t)

		// Act
		resp := postJSON(t, base+"/api/v1/mailer/notify", `{"email":"user@example.com\r\nBcc: x@example.com","content":"x"}`)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Empty(t, srv.Messages())
	})
}

func TestConfigPath(t *testing.T) {

	t.Run("Explicit", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "/tmp/x.yaml")
		assert.Equal(t, "/tmp/x.yaml", configPath())
	})

	t.Run("Local", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("LOCAL", "true")
		assert.Equal(t, "./config/config.yaml", configPath())
	})

	t.Run("Default", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("LOCAL", "")
		assert.Equal(t, "/config/config.yaml", configPath())
	})
}
