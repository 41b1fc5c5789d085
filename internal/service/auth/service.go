package auth

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when username/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrValidation is returned for bad or missing registration fields.
	ErrValidation = errors.New("username and password required")
)

type userRepo interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type orderRepo interface {
	GetOpenByUser(ctx context.Context, userID string) (*domain.Order, error)
}

// Service handles registration and login.
type Service struct {
	users  userRepo
	orders orderRepo
	tokens *TokenManager

	bootstrapUsername string
	bootstrapPassword string

	logger zerolog.Logger
}

func New(users userRepo, orders orderRepo, tokens *TokenManager, bootstrapUsername, bootstrapPassword string, logger zerolog.Logger) *Service {
	return &Service{
		users:             users,
		orders:            orders,
		tokens:            tokens,
		bootstrapUsername: bootstrapUsername,
		bootstrapPassword: bootstrapPassword,
		logger:            logger.With().Str("service", "auth").Logger(),
	}
}

// Register hashes the password and persists a new user. The configured
// bootstrap identity is the only one granted admin rights; everything else
// registers as a regular user. No session is emitted.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrValidation
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	isAdmin := s.bootstrapUsername != "" &&
		username == s.bootstrapUsername && password == s.bootstrapPassword

	u, err := s.users.Create(ctx, domain.User{
		Username:     username,
		PasswordHash: string(hashed),
		IsAdmin:      isAdmin,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", u.ID).Bool("admin", u.IsAdmin).Msg("user registered")
	return u, nil
}

// LoginResult is what a successful login hands back to the client: a bearer
// token, the admin flag, and the user's draft order (nil when none) so the
// client can re-hydrate its cart.
type LoginResult struct {
	Token     string
	IsAdmin   bool
	OpenOrder *domain.Order
}

// Login validates credentials and issues a token.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Username, u.IsAdmin)
	if err != nil {
		return nil, err
	}

	openOrder, err := s.orders.GetOpenByUser(ctx, u.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	s.logger.Info().Str("user_id", u.ID).Bool("has_draft", openOrder != nil).Msg("login")
	return &LoginResult{
		Token:     token,
		IsAdmin:   u.IsAdmin,
		OpenOrder: openOrder,
	}, nil
}
