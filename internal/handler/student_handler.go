package handler

import (
	"net/http"

	"github.com/careerbridge/careerbridge-backend/internal/middleware"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles student profiles and their applications.
type StudentHandler struct {
	studentService     *service.StudentService
	applicationService *service.ApplicationService
	owners             *service.Ownership
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, applicationService *service.ApplicationService, owners *service.Ownership) *StudentHandler {
	return &StudentHandler{
		studentService:     studentService,
		applicationService: applicationService,
		owners:             owners,
	}
}

// ListStudents godoc
// GET /api/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// GetStudent godoc
// GET /api/students/:id
// Returns the profile with applied colleges and test results.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	st, err := h.studentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": st})
}

// UpdateStudent godoc
// PUT /api/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	if !allowed(c, h.owners.Student(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}

	var req model.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.studentService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": st})
}

// DeleteStudent godoc
// DELETE /api/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if !allowed(c, h.owners.Student(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}
	if err := h.studentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListApplications godoc
// GET /api/students/:id/applications
// Only the student themself sees the list.
func (h *StudentHandler) ListApplications(c *gin.Context) {
	if !allowed(c, h.owners.Student(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}

	apps, err := h.applicationService.ListForStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applications": apps})
}

// Apply godoc
// POST /api/students/:id/applications
func (h *StudentHandler) Apply(c *gin.Context) {
	if !allowed(c, h.owners.Student(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}

	var req model.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationService.Apply(c.Request.Context(), c.Param("id"), req.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"application": app})
}
