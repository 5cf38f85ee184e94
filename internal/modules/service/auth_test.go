package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/modules/model"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

func authTestCfg() *config.Config {
	return &config.Config{
		Auth: config.AuthCfg{
			JWTSecret:   "test-secret",
			TokenTTLMin: 60,
			BcryptCost:  bcrypt.MinCost,
		},
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_LoginSuccess(t *testing.T) {
	users := &MockUserRepo{}
	cache := newFakeUserCache()
	svc := NewAuthService(users, cache, authTestCfg(), zap.NewNop())

	alice := &model.User{
		ID:           "usr1",
		Username:     "alice",
		Email:        "alice@example.edu",
		Role:         model.RoleAdmin,
		PasswordHash: hashOf(t, "s3cret-pass"),
	}
	users.On("FindByIdentifier", mock.Anything, "alice").Return(alice, nil)

	token, u, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "usr1", u.ID)

	// the issued token resolves straight back to the same identity
	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "usr1", resolved.ID)
	assert.True(t, resolved.IsAdmin())
	users.AssertExpectations(t)
}

func TestAuthService_LoginWrongSecret(t *testing.T) {
	users := &MockUserRepo{}
	svc := NewAuthService(users, newFakeUserCache(), authTestCfg(), zap.NewNop())

	alice := &model.User{ID: "usr1", Username: "alice", PasswordHash: hashOf(t, "right")}
	users.On("FindByIdentifier", mock.Anything, "alice").Return(alice, nil)

	token, _, err := svc.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(err))
	assert.Empty(t, token, "no credential issued on failure")
}

func TestAuthService_LoginUnknownIdentifier(t *testing.T) {
	users := &MockUserRepo{}
	svc := NewAuthService(users, newFakeUserCache(), authTestCfg(), zap.NewNop())

	users.On("FindByIdentifier", mock.Anything, "ghost").Return(nil, nil)

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	require.Error(t, err)
	// unknown user and wrong password are indistinguishable to the caller
	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(err))
}

func TestAuthService_ResolveGarbageToken(t *testing.T) {
	svc := NewAuthService(&MockUserRepo{}, newFakeUserCache(), authTestCfg(), zap.NewNop())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Resolve(context.Background(), token)
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	}
}

func TestAuthService_ResolveExpiredToken(t *testing.T) {
	cfg := authTestCfg()
	cfg.Auth.TokenTTLMin = -1
	users := &MockUserRepo{}
	svc := NewAuthService(users, newFakeUserCache(), cfg, zap.NewNop())

	alice := &model.User{ID: "usr1", Username: "alice", PasswordHash: hashOf(t, "pw-long-enough")}
	users.On("FindByIdentifier", mock.Anything, "alice").Return(alice, nil)

	token, _, err := svc.Login(context.Background(), "alice", "pw-long-enough")
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestAuthService_ResolveHitsCacheBeforeStore(t *testing.T) {
	users := &MockUserRepo{}
	cache := newFakeUserCache()
	svc := NewAuthService(users, cache, authTestCfg(), zap.NewNop())

	alice := &model.User{ID: "usr1", Username: "alice", PasswordHash: hashOf(t, "pw-long-enough")}
	users.On("FindByIdentifier", mock.Anything, "alice").Return(alice, nil)

	token, _, err := svc.Login(context.Background(), "alice", "pw-long-enough")
	require.NoError(t, err)

	// no GetByID expectation set: a store round-trip would fail the test
	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "usr1", resolved.ID)
	users.AssertExpectations(t)
}

func TestAuthService_ResolveUnknownSubject(t *testing.T) {
	users := &MockUserRepo{}
	svc := NewAuthService(users, newFakeUserCache(), authTestCfg(), zap.NewNop())

	alice := &model.User{ID: "usr1", Username: "alice", PasswordHash: hashOf(t, "pw-long-enough")}
	users.On("FindByIdentifier", mock.Anything, "alice").Return(alice, nil)
	users.On("GetByID", mock.Anything, "usr1").
		Return(nil, apperr.New(apperr.KindNotFound, "record not found"))

	token, _, err := svc.Login(context.Background(), "alice", "pw-long-enough")
	require.NoError(t, err)

	// cold cache and a store that no longer knows the user
	cold := NewAuthService(users, newFakeUserCache(), authTestCfg(), zap.NewNop())
	_, err = cold.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		in       RegisterInput
		setup    func(*MockUserRepo)
		wantKind apperr.Kind
	}{
		{
			name: "success",
			in:   RegisterInput{Username: "carol", Email: "carol@example.edu", Password: "longenough"},
			setup: func(users *MockUserRepo) {
				users.On("FindByIdentifier", mock.Anything, "carol").Return(nil, nil)
				users.On("FindByIdentifier", mock.Anything, "carol@example.edu").Return(nil, nil)
				users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleUser && u.PasswordHash != "" && u.DisplayName == "carol"
				})).Return(nil)
			},
		},
		{
			name:     "short password",
			in:       RegisterInput{Username: "carol", Email: "carol@example.edu", Password: "short"},
			setup:    func(*MockUserRepo) {},
			wantKind: apperr.KindValidationFailed,
		},
		{
			name:     "bad email",
			in:       RegisterInput{Username: "carol", Email: "not-an-email", Password: "longenough"},
			setup:    func(*MockUserRepo) {},
			wantKind: apperr.KindValidationFailed,
		},
		{
			name: "username taken",
			in:   RegisterInput{Username: "carol", Email: "carol@example.edu", Password: "longenough"},
			setup: func(users *MockUserRepo) {
				users.On("FindByIdentifier", mock.Anything, "carol").
					Return(&model.User{ID: "usr9", Username: "carol"}, nil)
			},
			wantKind: apperr.KindValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &MockUserRepo{}
			tt.setup(users)
			svc := NewAuthService(users, newFakeUserCache(), authTestCfg(), zap.NewNop())

			u, err := svc.Register(context.Background(), tt.in)
			if tt.wantKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.RoleUser, u.Role)
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterPasswordIsHashed(t *testing.T) {
	users := &MockUserRepo{}
	users.On("FindByIdentifier", mock.Anything, mock.Anything).Return(nil, nil)

	var created *model.User
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*model.User)
	}).Return(nil)

	svc := NewAuthService(users, newFakeUserCache(), authTestCfg(), zap.NewNop())
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "dave", Email: "dave@example.edu", Password: "plaintext-pw",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "plaintext-pw", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("plaintext-pw")))
}

func TestAuthService_TokenCarriesRoleAndExpiry(t *testing.T) {
	users := &MockUserRepo{}
	cache := newFakeUserCache()
	svc := NewAuthService(users, cache, authTestCfg(), zap.NewNop())

	alice := &model.User{ID: "usr1", Username: "alice", Role: model.RoleUser, PasswordHash: hashOf(t, "pw-long-enough")}
	users.On("FindByIdentifier", mock.Anything, "alice").Return(alice, nil)

	token, _, err := svc.Login(context.Background(), "alice", "pw-long-enough")
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, resolved.IsAdmin())
}
