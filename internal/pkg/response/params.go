package response

import (
	"errors"
	"net/http"
	"strconv"

	"hotel/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// IDParam parses a positive int64 path parameter, answering 400 otherwise.
func IDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

// PageParams reads ?page (1-based) and ?size with sane bounds.
func PageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// BindError answers a request body that could not be decoded.
func BindError(c *gin.Context, err error) {
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
}

// Validation answers a service validation failure, with per-field details when present.
func Validation(c *gin.Context, err error) {
	var fields validator.Errors
	if errors.As(err, &fields) {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", fields)
		return
	}
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}
