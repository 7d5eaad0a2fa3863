// Package accounts manages the emulator's email/password accounts.
// Passwords are stored as bcrypt hashes; local ids are random UUIDs.
package accounts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ymiyake/enquete/internal/common"
)

// Account is one registered identity.
type Account struct {
	LocalID      string
	Email        string
	passwordHash []byte
}

// Manager holds accounts in memory. Safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	byEmail  map[string]*Account
	hashCost int
}

func NewManager() *Manager {
	// MinCost keeps the emulator's sign-up latency negligible; it is not
	// a production credential store.
	return &Manager{byEmail: make(map[string]*Account), hashCost: bcrypt.MinCost}
}

// SignUp registers a new account. Returns common.ErrEmailExists when the
// email is already taken.
func (m *Manager) SignUp(_ context.Context, email, password string) (*Account, error) {
	email = normalize(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[email]; ok {
		return nil, common.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.hashCost)
	if err != nil {
		return nil, err
	}

	acc := &Account{LocalID: uuid.NewString(), Email: email, passwordHash: hash}
	m.byEmail[email] = acc
	return acc, nil
}

// SignIn verifies the credentials. Unknown emails and wrong passwords both
// return common.ErrInvalidCredentials.
func (m *Manager) SignIn(_ context.Context, email, password string) (*Account, error) {
	m.mu.RLock()
	acc, ok := m.byEmail[normalize(email)]
	m.mu.RUnlock()

	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	return acc, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
