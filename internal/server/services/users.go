// Package services holds the business logic that sits between the HTTP
// handlers and the record store.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
)

// LoginResult tells apart the outcomes of a login attempt.
type LoginResult int

const (
	LoginAccepted LoginResult = iota
	LoginUnknownUser
	LoginWrongPassword
	// LoginCredentialFault means the stored hash could not be checked.
	LoginCredentialFault
)

func (r LoginResult) String() string {
	switch r {
	case LoginAccepted:
		return "accepted"
	case LoginUnknownUser:
		return "unknown_user"
	case LoginWrongPassword:
		return "wrong_password"
	case LoginCredentialFault:
		return "credential_fault"
	default:
		return fmt.Sprintf("LoginResult(%d)", int(r))
	}
}

// UserStore is the slice of the record store the user service needs.
type UserStore interface {
	Register(ctx context.Context, u models.User) (bool, error)
	GetByUsername(name string) (models.User, bool, error)
}

var (
	hashPassword   = auth.HashPassword
	verifyPassword = auth.VerifyPassword
)

type UserService struct {
	users      UserStore
	bcryptCost int
	logger     logging.Logger
}

func NewUserService(users UserStore, bcryptCost int, logger logging.Logger) *UserService {
	return &UserService{
		users:      users,
		bcryptCost: bcryptCost,
		logger:     logger.With("module", "users"),
	}
}

// Register hashes password and stores the account under id.
//
// Errors:
//   - common.ErrorValidation: the password cannot be hashed as given.
//   - common.ErrorAlreadyExists: id or username is already registered.
//   - common.ErrorInternal: hashing failed for any other reason.
//   - common.ErrorStorePoisoned: the store is unusable.
func (s *UserService) Register(ctx context.Context, id uint64, username, password string) (*models.User, error) {
	hash, err := hashPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		s.logger.Error(ctx, "password hashing failed", "username", username, "error", err.Error())
		return nil, common.ErrorInternal
	}

	user := models.User{ID: id, UserName: username, Password: hash}

	ok, err := s.users.Register(ctx, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %d %q: %w", id, username, common.ErrorAlreadyExists)
	}

	s.logger.Info(ctx, "user registered", "id", id, "username", username)
	return &user, nil
}

// Login checks password against the stored hash for username. The error is
// reserved for store failures; every credential outcome is a LoginResult.
func (s *UserService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, found, err := s.users.GetByUsername(username)
	if err != nil {
		return LoginCredentialFault, err
	}
	if !found {
		return LoginUnknownUser, nil
	}

	ok, err := verifyPassword([]byte(password), user.Password)
	switch {
	case err != nil:
		s.logger.Warn(ctx, "stored credential unusable", "id", user.ID, "error", err.Error())
		return LoginCredentialFault, nil
	case !ok:
		return LoginWrongPassword, nil
	default:
		return LoginAccepted, nil
	}
}
