package service

import (
	"context"
	"errors"
	"time"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/repository"
)

// ErrEmailAlreadyExists is returned at registration. Registration reports a
// taken email as a bad request rather than a conflict.
var ErrEmailAlreadyExists = apperror.BadRequest("Email already registered")

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = normalizeEmail(email)

	existing, err := s.userRepository.ByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost a race with a concurrent registration
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) ByID(ctx context.Context, owner model.OwnerID) (*model.User, error) {
	return s.userRepository.ByID(ctx, int64(owner))
}
