package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coursehub/internal/domain"
	"coursehub/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Course{}, &domain.Enrollment{}))
	return db
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	u := &domain.User{ID: utils.NewID(), Email: "a@example.com", Name: "A", PasswordHash: "x", Role: domain.RoleStudent}
	require.NoError(t, r.Create(ctx, u))

	dup := &domain.User{ID: utils.NewID(), Email: "a@example.com", Name: "A2", PasswordHash: "x", Role: domain.RoleStudent}
	assert.ErrorIs(t, r.Create(ctx, dup), domain.ErrEmailTaken)
}

func TestUserRepoFindMissingIsNilNil(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	u, err := r.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = r.FindByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

// The composite primary key is the backstop against racing duplicate
// enrollments, independent of the service-level check.
func TestEnrollConstraintBackstop(t *testing.T) {
	db := newTestDB(t)
	r := NewCourseRepo(db)
	ctx := context.Background()

	c := &domain.Course{ID: utils.NewID(), Title: "T", Description: "d", Price: 1, InstructorID: "i", Seats: 5}
	require.NoError(t, r.Create(ctx, c))

	require.NoError(t, r.Enroll(ctx, c.ID, "user-1"))
	assert.ErrorIs(t, r.Enroll(ctx, c.ID, "user-1"), domain.ErrAlreadyEnrolled)

	n, err := r.EnrolledCount(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

// A holder of a seat retrying on a full course is refused as a duplicate, not
// as full; only a newcomer sees the capacity refusal.
func TestEnrollRetryOnFullCourse(t *testing.T) {
	db := newTestDB(t)
	r := NewCourseRepo(db)
	ctx := context.Background()

	c := &domain.Course{ID: utils.NewID(), Title: "T", Description: "d", Price: 1, InstructorID: "i", Seats: 1}
	require.NoError(t, r.Create(ctx, c))

	require.NoError(t, r.Enroll(ctx, c.ID, "user-1"))
	assert.ErrorIs(t, r.Enroll(ctx, c.ID, "user-1"), domain.ErrAlreadyEnrolled)
	assert.ErrorIs(t, r.Enroll(ctx, c.ID, "user-2"), domain.ErrCourseFull)
}

func TestEnrollLegacyZeroSeats(t *testing.T) {
	db := newTestDB(t)
	r := NewCourseRepo(db)
	ctx := context.Background()

	// legacy row without a capacity falls back to the default of 10
	c := &domain.Course{ID: utils.NewID(), Title: "T", Description: "d", Price: 1, InstructorID: "i", Seats: 0}
	require.NoError(t, db.Create(c).Error)

	for i := 0; i < domain.DefaultSeats; i++ {
		require.NoError(t, r.Enroll(ctx, c.ID, utils.NewID()))
	}
	assert.ErrorIs(t, r.Enroll(ctx, c.ID, utils.NewID()), domain.ErrCourseFull)
}

func TestCourseUpdateOnlyGivenColumns(t *testing.T) {
	db := newTestDB(t)
	r := NewCourseRepo(db)
	ctx := context.Background()

	c := &domain.Course{ID: utils.NewID(), Title: "T", Description: "d", Price: 5, Image: "img", InstructorID: "i", Seats: 5}
	require.NoError(t, r.Create(ctx, c))

	price := 0.0
	got, err := r.Update(ctx, c.ID, domain.CourseUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Price)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, 5, got.Seats)

	_, err = r.Update(ctx, "missing", domain.CourseUpdate{Price: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
