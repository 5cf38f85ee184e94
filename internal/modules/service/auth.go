package service

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/modules/model"
	"github.com/vitrine-app/vitrine-api/internal/modules/repo"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

// UserCache is the resolved-identity cache the auth service consults
// before going back to the store. Implemented by cache.UserCache.
type UserCache interface {
	GetUser(ctx context.Context, id string) (*model.User, bool)
	SetUser(ctx context.Context, u *model.User)
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	// Login verifies the identifier/secret pair against the store and
	// issues a signed bearer token on success.
	Login(ctx context.Context, identifier, secret string) (string, *model.User, error)
	// Resolve maps a bearer token back to its user. Invalid, expired or
	// unknown tokens resolve to Unauthenticated, never to a panic or a
	// partial identity.
	Resolve(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	users      repo.UserRepo
	cache      UserCache
	log        *zap.Logger
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(users repo.UserRepo, cache UserCache, cfg *config.Config, log *zap.Logger) AuthService {
	return &authService{
		users:      users,
		cache:      cache,
		log:        log,
		secret:     []byte(cfg.Auth.JWTSecret),
		tokenTTL:   time.Duration(cfg.Auth.TokenTTLMin) * time.Minute,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	Password    string `json:"password"`
}

func (in RegisterInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 32)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 72)),
	)
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := in.validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindValidationFailed, err.Error(), err)
	}

	for _, ident := range []string{in.Username, in.Email} {
		existing, err := s.users.FindByIdentifier(ctx, ident)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.New(apperr.KindValidationFailed, "username or email already taken")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	display := in.DisplayName
	if display == "" {
		display = in.Username
	}

	// Registration never grants admin; that is an administrative action
	// on the store itself.
	u := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		DisplayName:  display,
		Role:         model.RoleUser,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Sugar().Infow("user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *authService) Login(ctx context.Context, identifier, secret string) (string, *model.User, error) {
	u, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, apperr.New(apperr.KindInvalidCredentials, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(secret)); err != nil {
		return "", nil, apperr.New(apperr.KindInvalidCredentials, "invalid credentials")
	}

	token, err := s.sign(u)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.cache.SetUser(ctx, u)
	s.log.Sugar().Infow("user logged in", "user_id", u.ID)
	return token, u, nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*model.User, error) {
	claims := new(sessionClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, apperr.New(apperr.KindUnauthenticated, "invalid or expired token")
	}

	if u, ok := s.cache.GetUser(ctx, claims.Subject); ok {
		return u, nil
	}

	u, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			// token signed for a user the store no longer knows
			return nil, apperr.New(apperr.KindUnauthenticated, "unknown user")
		}
		return nil, err
	}

	s.cache.SetUser(ctx, u)
	return u, nil
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) sign(u *model.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
