package handler

import (
	"errors"
	"net/http"

	"github.com/careerbridge/careerbridge-backend/internal/middleware"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/careerbridge/careerbridge-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// bindJSON binds and validates the request body into dst, writing the
// error response itself on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrPayloadTooLarge)
		return false
	}
	response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
	return false
}

// queryPtr returns the query parameter key, or nil when it is absent or empty.
func queryPtr(c *gin.Context, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}

// allowed writes the error response when err denies the request.
func allowed(c *gin.Context, err error) bool {
	if err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

// principal returns the verified caller, writing 401 when there is none.
func principal(c *gin.Context) (*model.Principal, bool) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}
	return p, true
}
