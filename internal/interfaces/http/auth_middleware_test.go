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

	apphttp "github.com/jhoicas/wms-catalog/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/wms-catalog/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "wms-catalog-test"
)

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, "ana", role, testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRequireRole_Casos(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		header  func(t *testing.T) string
		status  int
		code    string
	}{
		{"admin en ruta admin", []string{"admin"}, func(t *testing.T) string { return bearer(t, testUserID, "admin") }, http.StatusOK, ""},
		{"client en ruta multi-rol", []string{"admin", "client"}, func(t *testing.T) string { return bearer(t, testUserID, "client") }, http.StatusOK, ""},
		{"client en ruta admin", []string{"admin"}, func(t *testing.T) string { return bearer(t, testUserID, "client") }, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{"admin"}, func(t *testing.T) string { return bearer(t, testUserID, "") }, http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", []string{"admin"}, func(*testing.T) string { return "" }, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"token inválido", []string{"admin"}, func(*testing.T) string { return "Bearer token.invalido.aqui" }, http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireRole(tc.allowed...),
				func(c *fiber.Ctx) error { return c.SendString(apphttp.GetRole(c)) })

			status, body := get(t, app, "/protected", tc.header(t))
			assert.Equal(t, tc.status, status, body)
			if tc.code != "" {
				assert.Contains(t, body, tc.code)
			}
		})
	}
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		id, ok := apphttp.GetIdentity(c)
		return c.JSON(fiber.Map{
			"ok":       ok,
			"user_id":  id.UserID,
			"username": id.Username,
			"role":     id.Role,
		})
	})

	status, raw := get(t, app, "/me", bearer(t, testUserID, "admin"))
	require.Equal(t, http.StatusOK, status)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "ana", body["username"])
	assert.Equal(t, "admin", body["role"])
}

func TestAuthMiddleware_NormalizaSuperAdminLegacy(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetUserID(c))
	})
	_, body := get(t, app, "/me", bearer(t, "super-admin", "admin"))
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", body)
}
