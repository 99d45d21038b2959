package store

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/wemender/vorsilvester/internal/model"
	"github.com/wemender/vorsilvester/internal/utils"
)

// ErrEmailExists is returned when registering an email that already has
// an account. Handlers translate it into HTTP 400.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidCredentials covers both an unknown email and a wrong
// password, so responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore reads and writes the registered-account list in users.json.
type UserStore struct {
	mu   sync.Mutex
	path string
	cost int // bcrypt cost
}

// NewUserStore returns a store backed by users.json under dataDir.
func NewUserStore(dataDir string, bcryptCost int) *UserStore {
	return &UserStore{path: filepath.Join(dataDir, "users.json"), cost: bcryptCost}
}

// Register creates and persists a new account. The email is compared and
// stored case-insensitively normalized; the password is bcrypt-hashed.
func (s *UserStore) Register(email, name, password string) (model.UserAccount, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	users := readList[model.UserAccount](s.path)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return model.UserAccount{}, ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, s.cost)
	if err != nil {
		return model.UserAccount{}, err
	}
	u := model.UserAccount{
		ID:        utils.NewUserID(),
		Email:     email,
		Name:      name,
		PassHash:  hash,
		CreatedAt: time.Now().UTC(),
	}
	users = append([]model.UserAccount{u}, users...)
	if err := writeList(s.path, users); err != nil {
		return model.UserAccount{}, err
	}
	return u, nil
}

// Authenticate looks up the account by email and verifies the password.
// Both failure modes collapse into ErrInvalidCredentials.
func (s *UserStore) Authenticate(email, password string) (model.UserAccount, error) {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	users := readList[model.UserAccount](s.path)
	s.mu.Unlock()

	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			if !utils.VerifyPassword(u.PassHash, password) {
				return model.UserAccount{}, ErrInvalidCredentials
			}
			return u, nil
		}
	}
	return model.UserAccount{}, ErrInvalidCredentials
}
