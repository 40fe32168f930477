package auth

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/catalog-service/pkg/logger"
)

func newApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/admin", AdminGuard(secret, logger.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func call(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/admin", nil)
	if header != "" {
		req.Header.Set(HeaderAdminPassword, header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAdminGuard_Unconfigured(t *testing.T) {
	app := newApp("")

	for _, header := range []string{"", "anything"} {
		status, body := call(t, app, header)
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.JSONEq(t, `{"error":"Server not configured"}`, body)
	}
}

func TestAdminGuard_Configured(t *testing.T) {
	app := newApp("s3cret")

	status, body := call(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, body)

	status, _ = call(t, app, "S3CRET")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = call(t, app, "s3cre")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body = call(t, app, "s3cret")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches([]byte("abc"), []byte("abc")))
	assert.False(t, Matches([]byte("abd"), []byte("abc")))
	assert.False(t, Matches([]byte("ab"), []byte("abc")))
	assert.False(t, Matches(nil, []byte("")))
}
