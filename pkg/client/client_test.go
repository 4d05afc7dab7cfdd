package client_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coursehub/internal/core/auth"
	"coursehub/internal/domain"
	"coursehub/internal/repo"
	"coursehub/internal/service"
	"coursehub/internal/transport/http/router"
	"coursehub/pkg/client"
)

func init() { gin.SetMode(gin.TestMode) }

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Course{}, &domain.Enrollment{}))

	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "coursehub-test", TTL: time.Hour}
	log := zap.NewNop()
	users := repo.NewUserRepo(db)
	courses := repo.NewCourseRepo(db)
	engine := router.NewAPIEngine(router.Deps{
		Log:     log,
		Auth:    service.NewAuthService(users, jwter, log),
		Courses: service.NewCourseService(courses, users, nil, 0, log),
	})
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func TestSessionLifecycle(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	c := client.New(srv.URL)
	assert.Nil(t, c.Session())

	sess, err := c.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "admin", sess.User.Role)
	assert.NotEmpty(t, sess.Token)
	assert.Same(t, sess, c.Session())

	c.Logout()
	assert.Nil(t, c.Session())

	// authenticated call without a session fails with the server's code
	_, err = c.Me(ctx)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)

	sess, err = c.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	p, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, p.User.ID)
}

func TestSessionClearedOn401(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	c := client.New(srv.URL)
	_, err := c.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	// a stale token gets the session dropped on the next call
	c.Restore(client.Session{Token: "stale"})
	_, err = c.Me(ctx)
	require.Error(t, err)
	assert.Nil(t, c.Session())
}

func TestCourseFlow(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	admin := client.New(srv.URL)
	_, err := admin.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	course, err := admin.CreateCourse(ctx, client.NewCourse{
		Title: "Go", Description: "d", Price: 30, Seats: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, course.Seats)

	// partial update, zero price included
	price := 0.0
	updated, err := admin.UpdateCourse(ctx, course.ID, client.CourseUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Price)
	assert.Equal(t, "Go", updated.Title)

	student := client.New(srv.URL)
	_, err = student.Register(ctx, "Bob", "bob@example.com", "secret1")
	require.NoError(t, err)

	// the catalog is public
	anon := client.New(srv.URL)
	catalog, err := anon.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Alice", catalog[0].Instructor.Name)

	require.NoError(t, student.Enroll(ctx, course.ID))

	var apiErr *client.APIError
	err = student.Enroll(ctx, course.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)

	late := client.New(srv.URL)
	_, err = late.Register(ctx, "Carol", "carol@example.com", "secret1")
	require.NoError(t, err)
	err = late.Enroll(ctx, course.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)

	p, err := student.Me(ctx)
	require.NoError(t, err)
	require.Len(t, p.EnrolledCourses, 1)
	assert.Equal(t, course.ID, p.EnrolledCourses[0].ID)

	// students cannot manage the catalog
	_, err = student.CreateCourse(ctx, client.NewCourse{Title: "X", Description: "x", Price: 1})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)

	require.NoError(t, admin.DeleteCourse(ctx, course.ID))
	err = admin.DeleteCourse(ctx, course.ID)
	require.Error(t, err)
	assert.True(t, errors.As(err, &apiErr) && apiErr.Status == 404)
}
