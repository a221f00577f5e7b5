package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   ErrCode
	}{
		{model.NewValidationError("name", "required"), http.StatusBadRequest, ErrValidation},
		{fmt.Errorf("course: %w", model.ErrNotFound), http.StatusNotFound, ErrNotFound},
		{model.ErrConflict, http.StatusConflict, ErrConflict},
		{model.ErrInvalidState, http.StatusConflict, ErrInvalidState},
		{model.ErrInvalidCredentials, http.StatusUnauthorized, ErrInvalidCredentials},
		{model.ErrUnauthenticated, http.StatusUnauthorized, ErrTokenInvalid},
		{model.ErrForbidden, http.StatusForbidden, ErrForbidden},
		{model.ErrRemoteUnavailable, http.StatusServiceUnavailable, ErrRemoteUnavailable},
		{errors.New("boom"), http.StatusInternalServerError, ErrInternal},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			status, code := Classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func serveError(t *testing.T, err error) Response {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHidesDetailOutsideDevelopment(t *testing.T) {
	ExposeDetail(false)
	body := serveError(t, errors.New("pq: relation does not exist"))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrInternal, body.Error.Code)
	assert.Empty(t, body.Error.Detail)
	assert.NotEmpty(t, body.Metadata.RequestID)

	ExposeDetail(true)
	t.Cleanup(func() { ExposeDetail(false) })
	body = serveError(t, errors.New("pq: relation does not exist"))
	assert.Equal(t, "pq: relation does not exist", body.Error.Detail)
}

func TestErrorCarriesValidationFields(t *testing.T) {
	ExposeDetail(false)
	body := serveError(t, model.NewValidationError("decision", "must be approved or rejected"))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrValidation, body.Error.Code)
	assert.Equal(t, "must be approved or rejected", body.Error.Fields["decision"])
}
