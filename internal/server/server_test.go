package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_PanicBecomes500(t *testing.T) {
	app := NewApp(false)
	app.Post("/webhooks/test", func(c *fiber.Ctx) error { panic("unexpected") })

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/webhooks/test", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":true,"message":"Internal server error"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestErrorHandler_KeepsClientErrorMessages(t *testing.T) {
	app := NewApp(false)
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(http.StatusTeapot, "short and stout") })
	app.Get("/secret", func(c *fiber.Ctx) error { return errors.New("db password is hunter2") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "short and stout")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/secret", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "hunter2")
}

func TestCheckSealToken(t *testing.T) {
	assert.NoError(t, CheckSealToken(&config.Config{SealToken: "tok"}))
	assert.NoError(t, CheckSealToken(&config.Config{}))

	err := CheckSealToken(&config.Config{SealRequireToken: true})
	var cfgErr *config.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
