package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"coursehub/internal/domain"
	resp "coursehub/internal/transport/http/response"
)

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, resp.OK(data))
}

// fail maps sentinel errors onto the envelope; anything unmatched is a 500
// with a generic message so store errors never leak to clients.
func fail(c *gin.Context, err error) {
	code := resp.CodeServerError
	msg := ""
	switch {
	case errors.Is(err, domain.ErrValidation):
		code = resp.CodeBadRequest
		msg = err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		code = resp.CodeUnauthorized
		msg = "invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		code = resp.CodeUnauthorized
		msg = err.Error()
	case errors.Is(err, domain.ErrForbidden):
		code = resp.CodeForbidden
		msg = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		code = resp.CodeNotFound
		msg = err.Error()
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyEnrolled),
		errors.Is(err, domain.ErrCourseFull):
		code = resp.CodeConflict
		msg = err.Error()
	}
	c.JSON(resp.HTTPStatus(code), resp.Error(code, msg))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(resp.HTTPStatus(resp.CodeBadRequest), resp.Error(resp.CodeBadRequest, msg))
}
