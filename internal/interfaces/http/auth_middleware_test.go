package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/inspectos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inspectos-api/pkg/jwt"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "inspectos-test"
	testExpMin    = 60
)

// buildTestApp monta GET /protected con JWT + RequireRole y un handler que
// responde el rol del contexto.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"role": apphttp.GetRole(c), "tenant_id": apphttp.GetTenantID(c)})
		},
	)
	return app
}

// tokenForRole JWT del tenant de prueba con el rol indicado ("" = sin rol).
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testTenantID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ── RequireRole ───────────────────────────────────────────────────────────────

// Matriz de roles para una ruta de gestión (owner y admin), como /api/overview.
func TestRequireRole_MatrizRutaDeGestion(t *testing.T) {
	app := buildTestApp(entity.RoleOwner, entity.RoleAdmin)

	cases := []struct {
		role     string
		wantCode int
		wantErr  string
	}{
		{role: entity.RoleOwner, wantCode: http.StatusOK},
		{role: entity.RoleAdmin, wantCode: http.StatusOK},
		{role: entity.RoleInspector, wantCode: http.StatusForbidden, wantErr: "FORBIDDEN"},
		{role: entity.RoleOffice, wantCode: http.StatusForbidden, wantErr: "FORBIDDEN"},
		{role: "", wantCode: http.StatusUnauthorized, wantErr: "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run("rol="+tc.role, func(t *testing.T) {
			resp := doRequest(t, app, tokenForRole(t, tc.role))
			defer resp.Body.Close()

			require.Equal(t, tc.wantCode, resp.StatusCode)
			if tc.wantErr == "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tc.role, body["role"])
				assert.Equal(t, testTenantID, body["tenant_id"])
				return
			}
			assert.Equal(t, tc.wantErr, decodeError(t, resp).Code)
		})
	}
}

// Sin rol es 401 (falta identidad completa); con rol ajeno es 403 (identidad
// válida sin permiso). Misma ruta, códigos distintos.
func TestRequireRole_SinRolEs401YRolAjenoEs403(t *testing.T) {
	app := buildTestApp(entity.RoleOwner)

	sinRol := doRequest(t, app, tokenForRole(t, ""))
	defer sinRol.Body.Close()
	ajeno := doRequest(t, app, tokenForRole(t, entity.RoleInspector))
	defer ajeno.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, sinRol.StatusCode)
	assert.Equal(t, "MISSING_ROLE", decodeError(t, sinRol).Code)
	assert.Equal(t, http.StatusForbidden, ajeno.StatusCode)
	errAjeno := decodeError(t, ajeno)
	assert.Equal(t, "FORBIDDEN", errAjeno.Code)
	assert.NotEmpty(t, errAjeno.Message)
}

func TestRequireRole_RolDesconocidoEs403(t *testing.T) {
	app := buildTestApp(entity.RoleOwner, entity.RoleAdmin, entity.RoleInspector, entity.RoleOffice)
	resp := doRequest(t, app, tokenForRole(t, "superuser"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
}

func TestRequireRole_SinCabeceraNiTokenValido(t *testing.T) {
	app := buildTestApp(entity.RoleOwner)

	for name, header := range map[string]string{
		"sin cabecera":     "",
		"token malformado": "Bearer token.invalido.aqui",
		"sin Bearer":       "Token abc",
	} {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, app, header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

// ── AuthMiddleware ────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaClaimsEnElContexto(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"tenant_id": apphttp.GetTenantID(c),
			"role":      apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleInspector))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testTenantID, body["tenant_id"])
	assert.Equal(t, entity.RoleInspector, body["role"])
}

// ── pkg/jwt ───────────────────────────────────────────────────────────────────

func TestJWT_GenerarYLeerConRol(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testTenantID, entity.RoleOffice, testIssuer, testExpMin)
	require.NoError(t, err)

	userID, tenantID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testTenantID, tenantID)
	assert.Equal(t, entity.RoleOffice, role)
}

func TestJWT_TokensRechazados(t *testing.T) {
	expirado, err := pkgjwt.Generate(testJWTSecret, testUserID, testTenantID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)
	sinTenant, err := pkgjwt.Generate(testJWTSecret, testUserID, "", entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	valido, err := pkgjwt.Generate(testJWTSecret, testUserID, testTenantID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, expirado)
	assert.Error(t, err, "expirado")
	_, _, _, err = pkgjwt.Parse(testJWTSecret, sinTenant)
	assert.Error(t, err, "un token sin tenant_id no autoriza nada")
	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", valido)
	assert.Error(t, err, "secret incorrecto")
}

func TestJWT_SinSecretNoGenera(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testTenantID, entity.RoleOwner, testIssuer, testExpMin)
	assert.Error(t, err)
}
