package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursehub/internal/domain"
	"coursehub/internal/service"
	mdw "coursehub/internal/transport/http/middleware"
)

type AuthHandler struct {
	auth    *service.AuthService
	courses *service.CourseService
}

func NewAuthHandler(auth *service.AuthService, courses *service.CourseService) *AuthHandler {
	return &AuthHandler{auth: auth, courses: courses}
}

type registerIn struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type credsOut struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

func credsView(c *service.Credentials) credsOut {
	return credsOut{
		ID:    c.User.ID,
		Name:  c.User.Name,
		Email: c.User.Email,
		Role:  c.User.Role,
		Token: c.Token,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	creds, err := h.auth.Register(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, credsView(creds))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	creds, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, credsView(creds))
}

// Me returns the actor with enrolled courses resolved to full records.
func (h *AuthHandler) Me(c *gin.Context) {
	actor := mdw.Actor(c)
	if actor == nil {
		fail(c, domain.ErrUnauthorized)
		return
	}
	p, err := h.courses.Profile(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
