package service

import (
	"context"
	"fmt"

	"github.com/aduanafuel/invoice-workflow/internal/application/port"
	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
)

// UserService exposes the administrative operations on user accounts the
// workflow depends on: credit balances and the active flag.
type UserService interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	SetCredits(ctx context.Context, actorID, userID int64, credits int) error
	SetActive(ctx context.Context, actorID, userID int64, active bool) error
}

type userServiceImpl struct {
	userRepo port.UserRepository
	logger   Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo port.UserRepository, logger Logger) UserService {
	return &userServiceImpl{userRepo: userRepo, logger: logger}
}

func (s *userServiceImpl) Get(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, nil
}

func (s *userServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *userServiceImpl) SetCredits(ctx context.Context, actorID, userID int64, credits int) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if credits < 0 {
		return fmt.Errorf("%w: credits must not be negative", ErrValidation)
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.SetCredits(ctx, userID, credits); err != nil {
		s.logger.Error("Failed to set credits", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("Credits updated", "user_id", userID, "credits", credits, "actor_id", actorID)
	return nil
}

func (s *userServiceImpl) SetActive(ctx context.Context, actorID, userID int64, active bool) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		s.logger.Error("Failed to set active flag", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("Active flag updated", "user_id", userID, "active", active, "actor_id", actorID)
	return nil
}

func (s *userServiceImpl) requireAdmin(ctx context.Context, actorID int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return fmt.Errorf("%w: user %d", ErrNotFound, actorID)
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: user administration is admin-only", ErrPermissionDenied)
	}
	return nil
}
