package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshop/shop/api/http/handlers"
	"github.com/dshop/shop/pkg/auth"
	"github.com/dshop/shop/pkg/repository/memory"
	securityjwt "github.com/dshop/shop/pkg/security/jwt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuthApp(t *testing.T) (*fiber.App, *securityjwt.Issuer) {
	t.Helper()
	repo := memory.NewUserRepository()
	issuer := securityjwt.NewIssuer([]byte(testSecret), "shop-backend", time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := auth.NewAuthService(repo, auth.NewBcryptHasher(), issuer, log)
	h := handlers.NewAuthHandler(uc)

	app := fiber.New()
	app.Post("/api/v1/auth/register", h.Register)
	app.Post("/api/v1/auth/login", h.Login)
	return app, issuer
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRegister(t *testing.T) {
	app, issuer := newAuthApp(t)

	t.Run("success defaults to USER role", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
			"email": "a@x.com", "password": "Password123!", "name": "Ann",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decode(t, resp)
		user := body["user"].(map[string]any)
		assert.Equal(t, "a@x.com", user["email"])
		assert.Equal(t, "USER", user["role"])
		assert.NotContains(t, user, "passwordHash")
		assert.NotContains(t, user, "password")

		// The issued token verifies and names the new user.
		claims, err := issuer.Verify(body["token"].(string))
		require.NoError(t, err)
		assert.Equal(t, user["id"], claims.Subject)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
			"email": "a@x.com", "password": "Other456!", "name": "Bob",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("short password rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
			"email": "b@x.com", "password": "12345",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		for _, email := range []string{"", "nope", "@x.com", "a@", "a@nodot"} {
			resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
				"email": email, "password": "Password123!",
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "email %q", email)
		}
	})

	t.Run("malformed JSON rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
		"email": "a@x.com", "password": "Password123!", "name": "Ann",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("wrong password unauthorized", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
			"email": "a@x.com", "password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid credentials", decode(t, resp)["message"])
	})

	t.Run("unknown email gets identical error", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
			"email": "nobody@x.com", "password": "Password123!",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid credentials", decode(t, resp)["message"])
	})

	t.Run("correct credentials", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
			"email": "a@x.com", "password": "Password123!",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode(t, resp)
		assert.NotEmpty(t, body["token"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "USER", user["role"])
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{"email": "a@x.com"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
