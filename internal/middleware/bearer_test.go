package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBearerApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(SecurityHeaders(), BearerAuth(secret))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{name: "exact match", secret: "abc", header: "Bearer abc", want: http.StatusOK},
		{name: "missing header", secret: "abc", header: "", want: http.StatusUnauthorized},
		{name: "wrong secret", secret: "abc", header: "Bearer abd", want: http.StatusUnauthorized},
		{name: "lowercase scheme", secret: "abc", header: "bearer abc", want: http.StatusUnauthorized},
		{name: "raw secret", secret: "abc", header: "abc", want: http.StatusUnauthorized},
		{name: "unset secret", secret: "", header: "Bearer ", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := newBearerApp(tt.secret).Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		})
	}
}
