package response

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/gin-gonic/gin"
)

var exposeDetail atomic.Bool

// ExposeDetail controls whether error bodies carry internal error text.
// Only enable it in development.
func ExposeDetail(enabled bool) {
	exposeDetail.Store(enabled)
}

// Classify maps an error of the domain taxonomy to an HTTP status and code.
func Classify(err error) (int, ErrCode) {
	switch {
	case model.IsValidation(err):
		return http.StatusBadRequest, ErrValidation
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, ErrNotFound
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict, ErrConflict
	case errors.Is(err, model.ErrInvalidState):
		return http.StatusConflict, ErrInvalidState
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrInvalidCredentials
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrTokenInvalid
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, ErrForbidden
	case errors.Is(err, model.ErrRemoteUnavailable):
		return http.StatusServiceUnavailable, ErrRemoteUnavailable
	default:
		return http.StatusInternalServerError, ErrInternal
	}
}

func errorBody(err error) *ErrorBody {
	_, code := Classify(err)
	body := &ErrorBody{Code: code, Message: GetMessage(code)}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		body.Fields = ve.Fields
	}
	if exposeDetail.Load() {
		body.Detail = err.Error()
	}
	return body
}

// Error sends the response matching err's taxonomy kind.
func Error(c *gin.Context, err error) {
	status, _ := Classify(err)
	_ = c.Error(err)
	c.JSON(status, Response{
		Data:     nil,
		Error:    errorBody(err),
		Metadata: buildMetadata(c),
	})
}

// AbortError aborts the middleware chain with the response matching err.
func AbortError(c *gin.Context, err error) {
	status, _ := Classify(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, Response{
		Data:     nil,
		Error:    errorBody(err),
		Metadata: buildMetadata(c),
	})
}
