package fiber

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupFiber_ErrorsAreJSON(t *testing.T) {
	app := SetupFiber(zap.NewNop())
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })

	tests := []struct {
		path string
		code int
	}{
		{"/boom", 500},
		{"/missing", 404},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.code, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var payload map[string]string
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.NotEmpty(t, payload["error"])
			assert.Equal(t, resp.Header.Get("X-Request-ID"), payload["requestId"])
		})
	}
}
