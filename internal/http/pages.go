package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/querycache"
)

// respondPage writes a list page. A list gated off by its filters answers
// with an empty page rather than an error.
func respondPage[T any](c *gin.Context, errs ErrorMapper, page querycache.Page[T], err error) {
	if errors.Is(err, querycache.ErrDisabled) {
		page, err = querycache.Page[T]{}, nil
	}
	if err != nil {
		errs.Respond(c, err)
		return
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	NewResponseBuilder(c).SuccessOK(page)
}

// respond writes v, or the error response for err.
func respond[T any](c *gin.Context, errs ErrorMapper, status int, v T, err error) {
	if err != nil {
		errs.Respond(c, err)
		return
	}
	NewResponseBuilder(c).Success(status, v)
}
