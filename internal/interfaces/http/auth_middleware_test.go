package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/application/usecase"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	apphttp "github.com/jhoicas/eproc-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/eproc-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "comprador@eproc.com"
)

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, role, "eproc-test", 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

// guardedApp replica la protección de DELETE /suppliers/:id.
func guardedApp() *fiber.App {
	app := fiber.New()
	app.Delete("/suppliers/:id",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	)
	return app
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	noRole, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "", "eproc-test", 60)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantErr  string
	}{
		{"admin borra", tokenForRole(t, entity.RoleAdmin), http.StatusNoContent, ""},
		{"rol en minúsculas", tokenForRole(t, "admin"), http.StatusNoContent, ""},
		{"comprador sin permiso", tokenForRole(t, entity.RoleBuyer), http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", "Bearer " + noRole, http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin cabecera", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema Basic", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token corrupto", "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	app := guardedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/suppliers/abc", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantErr != "" {
				var body dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.wantErr, body.Code)
			}
		})
	}
}

func TestAuthMiddleware_Locals(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"email":   apphttp.GetEmail(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleBuyer))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, entity.RoleBuyer, body["role"])
}

type stubUsers struct {
	users map[string]*entity.User
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }

func (s *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }

func TestUserHandler_Me(t *testing.T) {
	repo := &stubUsers{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Email: testEmail, Name: "Compras", Role: entity.RoleBuyer, Active: true, CreatedAt: time.Now()},
	}}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		UserUC:    usecase.NewUserUseCase(repo),
		JWTSecret: testJWTSecret,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleBuyer))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, testEmail, me.Email)
	assert.Equal(t, entity.RoleBuyer, me.Role)

	delete(repo.users, testUserID)
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleBuyer))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
