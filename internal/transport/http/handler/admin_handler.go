package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursehub/internal/domain"
	"coursehub/internal/service"
)

// AdminHandler backs the separate admin plane: user listing and the explicit
// role-grant path that replaces relying on first-registrant-gets-admin.
type AdminHandler struct {
	users *service.UserAdminService
}

func NewAdminHandler(users *service.UserAdminService) *AdminHandler {
	return &AdminHandler{users: users}
}

type listUsersQ struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // email/name substring
}

type userRow struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var in listUsersQ
	if err := c.ShouldBindQuery(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	users, total, err := h.users.List(c.Request.Context(), in.Offset, in.Limit, in.Q)
	if err != nil {
		fail(c, err)
		return
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
	}
	ok(c, http.StatusOK, gin.H{"total": total, "items": rows})
}

type grantRoleIn struct {
	Role string `json:"role" binding:"required,oneof=admin student"`
}

func (h *AdminHandler) GrantRole(c *gin.Context) {
	var in grantRoleIn
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	if id == "" {
		fail(c, domain.ErrValidation)
		return
	}
	if err := h.users.GrantRole(c.Request.Context(), id, in.Role); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id, "role": in.Role})
}

// CourseRoster lists who holds a seat in a course.
func (h *AdminHandler) CourseRoster(c *gin.Context) {
	users, err := h.users.Roster(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
	}
	ok(c, http.StatusOK, gin.H{"count": len(rows), "items": rows})
}
