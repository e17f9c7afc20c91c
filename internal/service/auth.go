package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/repository"
)

var ErrInvalidCredentials = apperror.Unauthorized("Incorrect email or password")

type AuthService struct {
	userRepository repository.UserRepository
	tokens         *TokenService
}

func NewAuthService(userRepository repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		tokens:         tokens,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Login checks the credentials and issues a fresh access/refresh pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, *TokenPair, error) {
	user, err := s.userRepository.ByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	err = ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	owner, err := s.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.ByID(ctx, int64(owner))
	if err != nil {
		return nil, err
	}

	return s.tokens.IssuePair(user.ID)
}

// Authenticate resolves the owner from an Authorization header carrying an
// access token
func (s *AuthService) Authenticate(header string) (model.OwnerID, error) {
	token, err := BearerToken(header)
	if err != nil {
		return 0, err
	}

	return s.tokens.Verify(token, TokenTypeAccess)
}

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

func ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
