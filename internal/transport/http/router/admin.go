package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coursehub/internal/core/server"
	"coursehub/internal/domain"
	"coursehub/internal/metrics"
	"coursehub/internal/service"
	"coursehub/internal/transport/http/handler"
	mdw "coursehub/internal/transport/http/middleware"
)

// NewAdminEngine builds the back-office engine: /admin/v1, admin role required
// on every route.
func NewAdminEngine(l *zap.Logger, auth *service.AuthService, users *service.UserAdminService) *gin.Engine {
	r := server.NewRouter(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(100, 200),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(auth, domain.RoleAdmin))

	reg := NewRegistry()
	reg.Register(&userAdminModule{h: handler.NewAdminHandler(users)})
	reg.MountAdmin(admin)

	return r
}

type userAdminModule struct {
	h *handler.AdminHandler
}

func (m *userAdminModule) MountAdmin(admin *gin.RouterGroup) {
	admin.GET("/users", m.h.ListUsers)
	admin.POST("/users/:id/role", m.h.GrantRole)
	admin.GET("/courses/:id/students", m.h.CourseRoster)
}
