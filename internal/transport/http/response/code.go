package response

import "net/http"

// Business codes follow HTTP semantics so clients get one vocabulary.
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeServerError     = 500
)

var CodeMsgMap = map[int]string{
	CodeOK:              "OK",
	CodeBadRequest:      "Bad Request",
	CodeUnauthorized:    "Unauthorized",
	CodeForbidden:       "Forbidden",
	CodeNotFound:        "Not Found",
	CodeConflict:        "Conflict",
	CodeTooManyRequests: "Too Many Requests",
	CodeServerError:     "Internal Server Error",
}

// HTTPStatus maps a business code onto the status line.
func HTTPStatus(code int) int {
	if code == CodeOK {
		return http.StatusOK
	}
	if _, ok := CodeMsgMap[code]; ok {
		return code
	}
	return http.StatusInternalServerError
}
