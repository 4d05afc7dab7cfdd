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

type Deps struct {
	Log     *zap.Logger
	Auth    *service.AuthService
	Courses *service.CourseService
}

// NewAPIEngine builds the public engine: /api/v1 with auth and course routes.
func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")

	reg := NewRegistry()
	reg.Register(&authModule{
		h:    handler.NewAuthHandler(d.Auth, d.Courses),
		auth: d.Auth,
	})
	reg.Register(&courseModule{
		h:    handler.NewCourseHandler(d.Courses),
		auth: d.Auth,
	})
	reg.MountAPI(api)

	return r
}

type authModule struct {
	h    *handler.AuthHandler
	auth *service.AuthService
}

func (m *authModule) Priority() int { return 10 }

func (m *authModule) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/auth")
	g.POST("/register", m.h.Register)
	g.POST("/login", m.h.Login)
	g.GET("/me", mdw.AuthJWT(m.auth, ""), m.h.Me)
}

type courseModule struct {
	h    *handler.CourseHandler
	auth *service.AuthService
}

func (m *courseModule) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/courses")
	g.GET("", m.h.List) // public catalog

	authed := g.Group("")
	authed.Use(mdw.AuthJWT(m.auth, ""))
	authed.POST("/:id/enroll", m.h.Enroll)

	admin := g.Group("")
	admin.Use(mdw.AuthJWT(m.auth, domain.RoleAdmin))
	admin.POST("", m.h.Create)
	admin.PUT("/:id", m.h.Update)
	admin.DELETE("/:id", m.h.Delete)
}
