package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"coursehub/internal/domain"
)

// UserAdminService serves the admin plane: account listing, role grants and
// course rosters.
type UserAdminService struct {
	users   domain.UserRepository
	courses domain.CourseRepository
	log     *zap.Logger
}

func NewUserAdminService(users domain.UserRepository, courses domain.CourseRepository, log *zap.Logger) *UserAdminService {
	return &UserAdminService{users: users, courses: courses, log: log}
}

func (s *UserAdminService) List(ctx context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	return s.users.List(ctx, offset, limit, q)
}

// GrantRole is the explicit admin-invitation path. It takes effect on the next
// authenticate since roles are resolved from the store, not from claims.
func (s *UserAdminService) GrantRole(ctx context.Context, id, role string) error {
	if role != domain.RoleAdmin && role != domain.RoleStudent {
		return domain.ErrValidation
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	s.log.Info("role granted", zap.String("user", id), zap.String("role", role))
	return nil
}

// Roster lists the accounts enrolled in a course, in enrollment order.
func (s *UserAdminService) Roster(ctx context.Context, courseID string) ([]domain.User, error) {
	c, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	ids, err := s.courses.EnrolledUserIDs(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("enrolled ids: %w", err)
	}
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u != nil {
			out = append(out, *u)
		}
	}
	return out, nil
}
