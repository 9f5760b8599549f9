// Package controllers maps HTTP requests onto the application services and
// renders the JSON shapes the dashboard UI consumes.
package controllers

import (
	"errors"
	"net"
	"net/http"

	"github.com/adrialopez/woocommerce-orders/app/services"
	"github.com/adrialopez/woocommerce-orders/pkg/auth"
	"github.com/adrialopez/woocommerce-orders/pkg/bind"
	"github.com/adrialopez/woocommerce-orders/pkg/logger"
	"github.com/adrialopez/woocommerce-orders/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=200"`
}

// Login verifies the credentials and sets the session cookie. The failure
// message never reveals whether the username exists.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Solicitud no válida")
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Login(body.Username, body.Password, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTooManyAttempts):
			response.Error(w, http.StatusTooManyRequests, "Demasiados intentos. Inténtalo de nuevo más tarde.")
		case errors.Is(err, services.ErrInvalidCredentials):
			response.Error(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		default:
			logger.WithCtx(r.Context()).Error("login: fallo interno", "error", err)
			response.Error(w, http.StatusInternalServerError, "Error en el servidor")
		}
		return
	}

	logger.WithCtx(r.Context()).Info("inicio de sesión", "username", user.Username, "role", user.Role)

	auth.SetCookie(w, token)
	response.Message(w, "Inicio de sesión exitoso")
}

// Logout clears the session cookie. Idempotent: logging out twice succeeds.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	response.Message(w, "Sesión cerrada correctamente")
}

// clientIP resolves the caller's address for login throttling, preferring
// the proxy header when present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
