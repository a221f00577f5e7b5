package handler

import (
	"net/http"

	"github.com/careerbridge/careerbridge-backend/internal/middleware"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// TestHandler handles test definitions, submissions and results.
type TestHandler struct {
	testService    *service.TestService
	studentService *service.StudentService
	owners         *service.Ownership
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService, studentService *service.StudentService, owners *service.Ownership) *TestHandler {
	return &TestHandler{testService: testService, studentService: studentService, owners: owners}
}

// ListTests godoc
// GET /api/tests?collegeId=
// Students only see published tests.
func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.testService.List(c.Request.Context(), middleware.GetPrincipal(c), c.Query("collegeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

// GetTest godoc
// GET /api/tests/:id
func (h *TestHandler) GetTest(c *gin.Context) {
	t, err := h.testService.Get(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test": t})
}

// CreateTest godoc
// POST /api/tests
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req model.TestInput
	if !bindJSON(c, &req) {
		return
	}
	if !allowed(c, h.owners.NewTest(c.Request.Context(), middleware.GetPrincipal(c), req.CollegeID)) {
		return
	}

	t, err := h.testService.CreateTest(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"test": t})
}

// UpdateTest godoc
// PUT /api/tests/:id
func (h *TestHandler) UpdateTest(c *gin.Context) {
	if !allowed(c, h.owners.Test(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}

	var req model.TestInput
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.testService.UpdateTest(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test": t})
}

// DeleteTest godoc
// DELETE /api/tests/:id
func (h *TestHandler) DeleteTest(c *gin.Context) {
	if !allowed(c, h.owners.Test(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}
	if err := h.testService.DeleteTest(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// PublishTest godoc
// POST /api/tests/:id/publish
func (h *TestHandler) PublishTest(c *gin.Context) {
	if !allowed(c, h.owners.Test(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}
	t, err := h.testService.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test": t})
}

// SubmitTest godoc
// POST /api/tests/:id/submit
// A student caller may omit studentId; it defaults to their own profile.
func (h *TestHandler) SubmitTest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.SubmitTestRequest
	if !bindJSON(c, &req) {
		return
	}

	studentID := req.StudentID
	if p.Role == model.RoleStudent {
		own, err := h.studentService.GetByProfileID(c.Request.Context(), p.Subject)
		if err != nil {
			response.Error(c, err)
			return
		}
		if studentID != "" && studentID != own.ID {
			response.Fail(c, http.StatusForbidden, response.ErrNotResourceOwner)
			return
		}
		studentID = own.ID
	}
	if studentID == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"studentId": "studentId is a required field"})
		return
	}

	result, err := h.testService.Submit(c.Request.Context(), c.Param("id"), studentID, req.Answers)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"result": result})
}

// GetResults godoc
// GET /api/tests/:id/results
func (h *TestHandler) GetResults(c *gin.Context) {
	if !allowed(c, h.owners.Test(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}
	results, err := h.testService.GetResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}
