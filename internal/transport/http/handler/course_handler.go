package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursehub/internal/domain"
	"coursehub/internal/service"
	mdw "coursehub/internal/transport/http/middleware"
)

type CourseHandler struct {
	courses *service.CourseService
}

func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

type createCourseIn struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
	Image       string  `json:"image"`
	Seats       int     `json:"seats" binding:"omitempty,min=1"`
}

// updateCourseIn uses pointers so an absent field and a zero value are
// different things; price 0 is a real update here.
type updateCourseIn struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Seats       *int     `json:"seats"`
}

func (h *CourseHandler) Create(c *gin.Context) {
	actor := mdw.Actor(c)
	if actor == nil {
		fail(c, domain.ErrUnauthorized)
		return
	}
	var in createCourseIn
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	course, err := h.courses.Create(c.Request.Context(), actor, service.CreateCourseInput{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Seats:       in.Seats,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, course)
}

func (h *CourseHandler) List(c *gin.Context) {
	views, err := h.courses.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, views)
}

func (h *CourseHandler) Update(c *gin.Context) {
	actor := mdw.Actor(c)
	if actor == nil {
		fail(c, domain.ErrUnauthorized)
		return
	}
	var in updateCourseIn
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	course, err := h.courses.Update(c.Request.Context(), actor, c.Param("id"), domain.CourseUpdate{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Seats:       in.Seats,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	actor := mdw.Actor(c)
	if actor == nil {
		fail(c, domain.ErrUnauthorized)
		return
	}
	if err := h.courses.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "course removed"})
}

func (h *CourseHandler) Enroll(c *gin.Context) {
	actor := mdw.Actor(c)
	if actor == nil {
		fail(c, domain.ErrUnauthorized)
		return
	}
	if err := h.courses.Enroll(c.Request.Context(), actor, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "enrolled"})
}
