// Package repositories holds the account stores behind the login endpoint.
// The default store is an in-memory seeded list; setting AUTH_STORE=database
// swaps in a GORM-backed table without touching the auth service.
package repositories

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/pkg/auth"
)

// ErrUserNotFound is returned when no account matches the username. Callers
// must not leak the distinction between unknown user and bad password.
var ErrUserNotFound = errors.New("user not found")

// UserStore resolves dashboard accounts by username.
type UserStore interface {
	FindByUsername(username string) (*models.User, error)
}

// ─── Memory store ─────────────────────────────────────────────────────────────

// MemoryStore is the default account list. Credentials are hashed at
// construction so the comparison path is identical to the database store.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// seedAccounts are the two fixed dashboard operators.
var seedAccounts = []struct {
	id       int
	username string
	password string
	role     string
}{
	{1, "admin", "admin123", "admin"},
	{2, "almacen", "almacen123", "warehouse"},
}

// NewMemoryStore builds the seeded store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{users: make(map[string]*models.User, len(seedAccounts))}
	for _, a := range seedAccounts {
		hash, err := auth.HashPassword(a.password)
		if err != nil {
			panic("repositories: hash seed password: " + err.Error())
		}
		s.users[a.username] = &models.User{
			ID:       a.id,
			Username: a.username,
			Password: hash,
			Role:     a.role,
		}
	}
	return s
}

func (s *MemoryStore) FindByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// ─── Database store ───────────────────────────────────────────────────────────

// DBStore reads accounts from the users table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore wraps an open GORM connection. Migrate and Seed are left to the
// caller so tests can prepare their own fixtures.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Migrate creates the users table when missing.
func (s *DBStore) Migrate() error {
	return s.db.AutoMigrate(&models.User{})
}

// Seed inserts the default operators when the table is empty, so a fresh
// database-backed deployment accepts the same logins as the memory store.
func (s *DBStore) Seed() error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, a := range seedAccounts {
		hash, err := auth.HashPassword(a.password)
		if err != nil {
			return err
		}
		u := models.User{ID: a.id, Username: a.username, Password: hash, Role: a.role}
		if err := s.db.Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *DBStore) FindByUsername(username string) (*models.User, error) {
	var u models.User
	err := s.db.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
