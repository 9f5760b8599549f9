package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrialopez/woocommerce-orders/app/controllers"
	"github.com/adrialopez/woocommerce-orders/app/repositories"
	"github.com/adrialopez/woocommerce-orders/app/services"
	"github.com/adrialopez/woocommerce-orders/pkg/auth"
)

func newAuthController() *controllers.AuthController {
	return controllers.NewAuthController(
		services.NewAuthService(repositories.NewMemoryStore()))
}

func postLogin(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.9:51234"
	rec := httptest.NewRecorder()
	newAuthController().Login(rec, req)
	return rec
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	rec := postLogin(t, `{"username": "almacen", "password": "almacen123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Inicio de sesión exitoso")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, auth.CookieName, c.Name)
	assert.True(t, c.HttpOnly)

	claims, err := auth.ValidateToken(c.Value)
	require.NoError(t, err)
	assert.Equal(t, 2, claims.UserID)
	assert.Equal(t, "almacen", claims.Username)
	assert.Equal(t, "warehouse", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	rec := postLogin(t, `{"username": "almacen", "password": "nope"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Usuario o contraseña incorrectos")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	rec := postLogin(t, `{"username": "nadie", "password": "admin123"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Usuario o contraseña incorrectos")
}

func TestLoginMissingFieldsIsValidationError(t *testing.T) {
	rec := postLogin(t, `{"username": "admin"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Datos no válidos")
}

func TestLoginMalformedBody(t *testing.T) {
	rec := postLogin(t, `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	newAuthController().Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sesión cerrada correctamente")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}
