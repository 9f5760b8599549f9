// Package services holds the application logic between the HTTP controllers
// and the order gateway / account stores.
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/app/repositories"
	"github.com/adrialopez/woocommerce-orders/pkg/auth"
	"github.com/adrialopez/woocommerce-orders/pkg/cache"
	"github.com/adrialopez/woocommerce-orders/pkg/event"
	"github.com/adrialopez/woocommerce-orders/pkg/metrics"
)

// ErrInvalidCredentials covers both unknown user and wrong password; the
// login response never distinguishes them.
var ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")

// ErrTooManyAttempts is returned once an IP burns through its attempt
// budget inside the throttle window.
var ErrTooManyAttempts = errors.New("demasiados intentos de inicio de sesión")

const (
	maxLoginAttempts = 10
	throttleWindow   = 15 * time.Minute
)

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	store repositories.UserStore
}

// NewAuthService wires the service to an account store.
func NewAuthService(store repositories.UserStore) *AuthService {
	return &AuthService{store: store}
}

// Login checks the credentials and returns a signed session token. Failed
// attempts are counted per client IP in redis; when redis is down the
// counter degrades to a no-op and logins still work.
func (s *AuthService) Login(username, password, clientIP string) (string, *models.User, error) {
	throttleKey := fmt.Sprintf("login:attempts:%s", clientIP)

	if attempts := cache.Incr(throttleKey, throttleWindow); attempts > maxLoginAttempts {
		metrics.LoginTotal.WithLabelValues("locked").Inc()
		return "", nil, ErrTooManyAttempts
	}

	user, err := s.store.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			metrics.LoginTotal.WithLabelValues("failed").Inc()
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		metrics.LoginTotal.WithLabelValues("failed").Inc()
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("services: sign token: %w", err)
	}

	cache.Del(throttleKey)
	metrics.LoginTotal.WithLabelValues("success").Inc()
	event.FireAsync(event.UserLoggedIn, user.Username)

	return token, user, nil
}
