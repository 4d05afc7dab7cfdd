package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"coursehub/internal/core/cache"
	"coursehub/internal/domain"
	"coursehub/internal/metrics"
	"coursehub/pkg/utils"
)

const catalogCacheKey = "courses:catalog"

// CourseService owns course administration and the enrollment flow.
type CourseService struct {
	courses    domain.CourseRepository
	users      domain.UserRepository
	cache      cache.Store // nil disables caching
	catalogTTL time.Duration
	log        *zap.Logger
}

func NewCourseService(courses domain.CourseRepository, users domain.UserRepository, c cache.Store, catalogTTL time.Duration, log *zap.Logger) *CourseService {
	if catalogTTL <= 0 {
		catalogTTL = 30 * time.Second
	}
	return &CourseService{courses: courses, users: users, cache: c, catalogTTL: catalogTTL, log: log}
}

type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	Image       string
	Seats       int
}

// CourseView is the catalog shape: instructor resolved for display, plus the
// current seat usage.
type CourseView struct {
	domain.Course
	Instructor InstructorView `json:"instructor"`
	Enrolled   int64          `json:"enrolled"`
}

type InstructorView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Profile struct {
	User            *domain.User    `json:"user"`
	EnrolledCourses []domain.Course `json:"enrolledCourses"`
}

func (s *CourseService) Create(ctx context.Context, actor *domain.User, in CreateCourseInput) (*domain.Course, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" || in.Price < 0 {
		return nil, domain.ErrValidation
	}
	if in.Image == "" {
		in.Image = domain.DefaultImage
	}
	if in.Seats <= 0 {
		in.Seats = domain.DefaultSeats
	}

	c := &domain.Course{
		ID:           utils.NewID(),
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Image:        in.Image,
		InstructorID: actor.ID,
		Seats:        in.Seats,
	}
	if err := s.courses.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	metrics.CoursesCreated.Inc()
	s.invalidateCatalog(ctx)
	s.log.Info("course created", zap.String("id", c.ID), zap.String("instructor", actor.ID))
	return c, nil
}

// List is public. Results go through the read-through cache when one is wired.
func (s *CourseService) List(ctx context.Context) ([]CourseView, error) {
	if s.cache == nil {
		return s.loadCatalog(ctx)
	}
	views, err := cache.GetOrLoadJSON[[]CourseView](s.cache, ctx, catalogCacheKey, s.catalogTTL, func(ctx context.Context) (*[]CourseView, error) {
		vs, e := s.loadCatalog(ctx)
		if e != nil {
			return nil, e
		}
		return &vs, nil
	})
	if err != nil {
		// cache trouble must not take the catalog down
		s.log.Warn("catalog cache", zap.Error(err))
		return s.loadCatalog(ctx)
	}
	if views == nil {
		return []CourseView{}, nil
	}
	return *views, nil
}

func (s *CourseService) loadCatalog(ctx context.Context) ([]CourseView, error) {
	cs, err := s.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	views := make([]CourseView, 0, len(cs))
	instructors := map[string]InstructorView{}
	for _, c := range cs {
		iv, ok := instructors[c.InstructorID]
		if !ok {
			if u, e := s.users.FindByID(ctx, c.InstructorID); e == nil && u != nil {
				iv = InstructorView{ID: u.ID, Name: u.Name, Email: u.Email}
			} else {
				iv = InstructorView{ID: c.InstructorID}
			}
			instructors[c.InstructorID] = iv
		}
		n, e := s.courses.EnrolledCount(ctx, c.ID)
		if e != nil {
			return nil, fmt.Errorf("enrolled count: %w", e)
		}
		views = append(views, CourseView{Course: c, Instructor: iv, Enrolled: n})
	}
	return views, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, actor *domain.User, id string, up domain.CourseUpdate) (*domain.Course, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if up.Title != nil && strings.TrimSpace(*up.Title) == "" {
		return nil, domain.ErrValidation
	}
	if up.Price != nil && *up.Price < 0 {
		return nil, domain.ErrValidation
	}
	if up.Seats != nil && *up.Seats <= 0 {
		return nil, domain.ErrValidation
	}
	c, err := s.courses.Update(ctx, id, up)
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	s.log.Info("course deleted", zap.String("id", id), zap.String("by", actor.ID))
	return nil
}

// Enroll claims a seat for the actor. Ordering of refusals: unknown course,
// duplicate enrollment, full course. The repository runs the whole step in one
// transaction, so a refused claim never leaves a half-written relation behind.
func (s *CourseService) Enroll(ctx context.Context, actor *domain.User, courseID string) error {
	err := s.courses.Enroll(ctx, courseID, actor.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		metrics.EnrollmentsRejected.WithLabelValues("not_found").Inc()
		return err
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		metrics.EnrollmentsRejected.WithLabelValues("duplicate").Inc()
		return err
	case errors.Is(err, domain.ErrCourseFull):
		metrics.EnrollmentsRejected.WithLabelValues("full").Inc()
		return err
	case err != nil:
		return fmt.Errorf("enroll: %w", err)
	}
	metrics.EnrollmentsTotal.Inc()
	s.invalidateCatalog(ctx)
	s.log.Info("enrolled", zap.String("course", courseID), zap.String("user", actor.ID))
	return nil
}

func (s *CourseService) Profile(ctx context.Context, actor *domain.User) (*Profile, error) {
	cs, err := s.courses.CoursesForUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("courses for user: %w", err)
	}
	return &Profile{User: actor, EnrolledCourses: cs}, nil
}

func (s *CourseService) invalidateCatalog(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, catalogCacheKey)
	}
}
