package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"grade-stats/utils"
)

func setupAuthApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/private", AuthRequired(secret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("subject").(string))
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	t.Run("Success: valid token", func(t *testing.T) {
		token, err := utils.GenerateToken("s3cret", "registrar", "admin", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := setupAuthApp("s3cret").Test(req)

		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Error: missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/private", nil)
		resp, _ := setupAuthApp("s3cret").Test(req)

		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Error: token signed with another secret", func(t *testing.T) {
		token, err := utils.GenerateToken("other", "registrar", "", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := setupAuthApp("s3cret").Test(req)

		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Disabled without secret", func(t *testing.T) {
		app := fiber.New()
		app.Get("/private", AuthRequired(""), func(c *fiber.Ctx) error { return c.SendStatus(204) })

		resp, _ := app.Test(httptest.NewRequest("GET", "/private", nil))

		assert.Equal(t, 204, resp.StatusCode)
	})
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(c.Locals("request_id").(string)) })

	t.Run("generated", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/", nil))

		_, err := uuid.Parse(resp.Header.Get(HeaderRequestID))
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderRequestID, id)
		resp, _ := app.Test(req)

		assert.Equal(t, id, resp.Header.Get(HeaderRequestID))
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(RequestID(), RequestLogger(zap.New(core)))
	app.Get("/stats/:id", func(c *fiber.Ctx) error { return c.SendStatus(500) })

	_, err := app.Test(httptest.NewRequest("GET", "/stats/7", nil))
	require.NoError(t, err)

	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/stats/7", fields["path"])
	assert.Equal(t, int64(500), fields["status"])
}
