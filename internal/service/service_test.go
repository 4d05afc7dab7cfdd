package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coursehub/internal/core/auth"
	"coursehub/internal/domain"
	"coursehub/internal/repo"
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

func newJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "coursehub-test", TTL: time.Hour}
}

type fixture struct {
	db      *gorm.DB
	auth    *AuthService
	courses *CourseService
	admin   *UserAdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	users := repo.NewUserRepo(db)
	courseRepo := repo.NewCourseRepo(db)
	log := zap.NewNop()
	return &fixture{
		db:      db,
		auth:    NewAuthService(users, newJWTer(), log),
		courses: NewCourseService(courseRepo, users, nil, 0, log),
		admin:   NewUserAdminService(users, courseRepo, log),
	}
}
