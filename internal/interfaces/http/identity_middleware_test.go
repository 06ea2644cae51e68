package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/farmacia-pos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/farmacia-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testCashierID = "00000000-0000-0000-0000-0000000000ca"
	testIssuer    = "farmacia-pos-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con IdentityMiddleware y
// un handler que devuelve la identidad extraída del token.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.IdentityMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"cashier_id": apphttp.GetCashierID(c),
			})
		},
	)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authorization string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]any
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &payload))
	}
	return resp, payload
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos
// ──────────────────────────────────────────────────────────────────────────────

func TestIdentityMiddleware_TokenValidoExponeCajero(t *testing.T) {
	app := buildTestApp()
	token, err := pkgjwt.Generate(testJWTSecret, testCashierID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testCashierID, payload["cashier_id"],
		"la identidad del token debe quedar disponible para los handlers")
}

func TestIdentityMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp()
	resp, payload := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", payload["code"])
}

func TestIdentityMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()
	resp, payload := doRequest(t, app, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestIdentityMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp()
	token, err := pkgjwt.Generate("otro-secret", testCashierID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestIdentityMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()
	token, err := pkgjwt.Generate(testJWTSecret, testCashierID, testIssuer, -5)
	require.NoError(t, err)

	resp, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}
