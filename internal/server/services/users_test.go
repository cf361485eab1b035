package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

type fakeUserStore struct {
	byID map[uint64]models.User

	registerErr error
	getErr      error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uint64]models.User{}}
}

func (f *fakeUserStore) Register(_ context.Context, u models.User) (bool, error) {
	if f.registerErr != nil {
		return false, f.registerErr
	}
	if _, ok := f.byID[u.ID]; ok {
		return false, nil
	}
	for id, existing := range f.byID {
		if existing.UserName == u.UserName && id != u.ID {
			return false, nil
		}
	}
	f.byID[u.ID] = u
	return true, nil
}

func (f *fakeUserStore) GetByUsername(name string) (models.User, bool, error) {
	if f.getErr != nil {
		return models.User{}, false, f.getErr
	}
	for _, u := range f.byID {
		if u.UserName == name {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func newUserService(t *testing.T, users UserStore) *UserService {
	t.Helper()
	return NewUserService(users, bcrypt.MinCost, logging.Nop{})
}

// --- tests ---

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash, never the plain password", func(t *testing.T) {
		users := newFakeUserStore()
		s := newUserService(t, users)

		u, err := s.Register(ctx, 1, "alice", "secret")
		require.NoError(t, err)
		require.NotNil(t, u)

		stored := users.byID[1]
		assert.Equal(t, "alice", stored.UserName)
		assert.NotEqual(t, "secret", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))
		assert.Equal(t, stored, *u)
	})

	t.Run("duplicate username from another id", func(t *testing.T) {
		users := newFakeUserStore()
		s := newUserService(t, users)

		_, err := s.Register(ctx, 1, "alice", "secret")
		require.NoError(t, err)

		_, err = s.Register(ctx, 2, "alice", "other")
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)
		assert.Len(t, users.byID, 1)
	})

	t.Run("existing id is not replaced", func(t *testing.T) {
		users := newFakeUserStore()
		s := newUserService(t, users)

		first, err := s.Register(ctx, 1, "alice", "secret")
		require.NoError(t, err)

		_, err = s.Register(ctx, 1, "mallory", "other")
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)
		assert.Equal(t, *first, users.byID[1])
	})

	t.Run("password too long", func(t *testing.T) {
		s := newUserService(t, newFakeUserStore())

		_, err := s.Register(ctx, 1, "alice", strings.Repeat("x", 73))
		assert.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("hashing failure is internal", func(t *testing.T) {
		orig := hashPassword
		t.Cleanup(func() { hashPassword = orig })
		hashPassword = func([]byte, int) (string, error) { return "", errors.New("no entropy") }

		s := newUserService(t, newFakeUserStore())

		_, err := s.Register(ctx, 1, "alice", "secret")
		assert.ErrorIs(t, err, common.ErrorInternal)
	})

	t.Run("hasher receives the password as given", func(t *testing.T) {
		orig := hashPassword
		t.Cleanup(func() { hashPassword = orig })
		var got []byte
		hashPassword = func(p []byte, cost int) (string, error) {
			got = p
			return orig(p, cost)
		}

		s := newUserService(t, newFakeUserStore())

		_, err := s.Register(ctx, 1, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "secret", string(got))
	})

	t.Run("store error is passed through", func(t *testing.T) {
		users := newFakeUserStore()
		users.registerErr = common.ErrorStorePoisoned
		s := newUserService(t, users)

		_, err := s.Register(ctx, 1, "alice", "secret")
		assert.ErrorIs(t, err, common.ErrorStorePoisoned)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	s := newUserService(t, users)

	_, err := s.Register(ctx, 1, "alice", "secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		want     LoginResult
	}{
		{"correct credentials", "alice", "secret", LoginAccepted},
		{"wrong password", "alice", "wrong", LoginWrongPassword},
		{"unknown user", "bob", "secret", LoginUnknownUser},
		{"empty password", "alice", "", LoginWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Login(ctx, tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestUserService_Login_CredentialFault(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	users.byID[7] = models.User{ID: 7, UserName: "carol", Password: "not-a-bcrypt-hash"}
	s := newUserService(t, users)

	got, err := s.Login(ctx, "carol", "anything")
	require.NoError(t, err)
	assert.Equal(t, LoginCredentialFault, got)
	assert.NotEqual(t, LoginWrongPassword, got)
}

func TestUserService_Login_StoreError(t *testing.T) {
	users := newFakeUserStore()
	users.getErr = common.ErrorStorePoisoned
	s := newUserService(t, users)

	_, err := s.Login(context.Background(), "alice", "secret")
	assert.ErrorIs(t, err, common.ErrorStorePoisoned)
}

func TestLoginResult_String(t *testing.T) {
	assert.Equal(t, "accepted", LoginAccepted.String())
	assert.Equal(t, "unknown_user", LoginUnknownUser.String())
	assert.Equal(t, "wrong_password", LoginWrongPassword.String())
	assert.Equal(t, "credential_fault", LoginCredentialFault.String())
	assert.Equal(t, "LoginResult(42)", LoginResult(42).String())
}
