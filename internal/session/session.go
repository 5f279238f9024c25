// Package session owns the current-user lifecycle: registration, login,
// logout, and restoring a saved session at startup. The manager is an
// explicit value handed to commands; nothing here is process-global.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/validation"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers surface one generic message for either.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an email that already
	// has an account. The match is exact and case-sensitive.
	ErrEmailTaken = errors.New("an account with that email already exists")
)

type Manager struct {
	store storage.Provider
	user  *models.User
}

func NewManager(store storage.Provider) *Manager {
	return &Manager{store: store}
}

// Restore loads the persisted session pointer and resolves it to a user.
// A missing pointer or a pointer to a deleted user yields no session; the
// stale pointer is cleared.
func (m *Manager) Restore() (models.User, bool, error) {
	id, err := m.store.CurrentUserID()
	if err != nil {
		return models.User{}, false, err
	}
	if id == "" {
		return models.User{}, false, nil
	}

	user, err := m.store.GetUser(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_ = m.store.ClearCurrentUser()
			return models.User{}, false, nil
		}
		return models.User{}, false, err
	}

	m.user = &user
	return user, true, nil
}

// Login authenticates by exact email match and bcrypt password
// verification, then persists the session pointer.
//
// The client this replaces accepted any password for a known email; that
// gap is deliberately not reproduced here.
func (m *Manager) Login(email, password string) (models.User, error) {
	user, err := m.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := m.store.SetCurrentUserID(user.ID); err != nil {
		return models.User{}, fmt.Errorf("failed to persist session: %w", err)
	}
	m.user = &user
	return user, nil
}

// Register creates an account and signs it in. It fails without touching
// the store when the email is already registered.
func (m *Manager) Register(email, password, name string) (models.User, error) {
	if err := validation.Email(email); err != nil {
		return models.User{}, err
	}
	if err := validation.Password(password); err != nil {
		return models.User{}, err
	}

	if _, err := m.store.GetUserByEmail(email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := m.store.AddUser(user); err != nil {
		return models.User{}, err
	}
	if err := m.store.SetCurrentUserID(user.ID); err != nil {
		return models.User{}, fmt.Errorf("failed to persist session: %w", err)
	}

	m.user = &user
	return user, nil
}

// Logout clears the session pointer. The user record stays.
func (m *Manager) Logout() error {
	m.user = nil
	return m.store.ClearCurrentUser()
}

// Current returns the signed-in user, if any. Restore (or Login/Register)
// must have run first.
func (m *Manager) Current() (models.User, bool) {
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// UpdateUser replaces the stored user record and the in-memory session with
// the given value. The whole record is overwritten; callers pass a complete
// user.
func (m *Manager) UpdateUser(user models.User) error {
	if err := m.store.UpdateUser(user); err != nil {
		return err
	}
	if err := m.store.SetCurrentUserID(user.ID); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.user = &user
	return nil
}
