package handler

import (
	"net/http"

	"github.com/careerbridge/careerbridge-backend/internal/middleware"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// CollegeHandler handles the college directory, profiles and courses.
type CollegeHandler struct {
	collegeService     *service.CollegeService
	applicationService *service.ApplicationService
	owners             *service.Ownership
}

// NewCollegeHandler creates a new CollegeHandler.
func NewCollegeHandler(collegeService *service.CollegeService, applicationService *service.ApplicationService, owners *service.Ownership) *CollegeHandler {
	return &CollegeHandler{
		collegeService:     collegeService,
		applicationService: applicationService,
		owners:             owners,
	}
}

// ListColleges godoc
// GET /api/colleges?term=&country=
// Searches the directory of verified colleges.
func (h *CollegeHandler) ListColleges(c *gin.Context) {
	colleges, err := h.collegeService.Search(c.Request.Context(), c.Query("term"), c.Query("country"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"colleges": colleges})
}

// GetCollege godoc
// GET /api/colleges/:id
func (h *CollegeHandler) GetCollege(c *gin.Context) {
	college, err := h.collegeService.Get(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"college": college})
}

// CreateCollege godoc
// POST /api/colleges
// Creates the profile of the calling college account.
func (h *CollegeHandler) CreateCollege(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.CollegeRequest
	if !bindJSON(c, &req) {
		return
	}

	college, err := h.collegeService.Create(c.Request.Context(), p.Subject, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"college": college})
}

// UpdateCollege godoc
// PUT /api/colleges/:id
func (h *CollegeHandler) UpdateCollege(c *gin.Context) {
	if !allowed(c, h.owners.College(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}

	var req model.CollegeRequest
	if !bindJSON(c, &req) {
		return
	}

	college, err := h.collegeService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"college": college})
}

// DeleteCollege godoc
// DELETE /api/colleges/:id
func (h *CollegeHandler) DeleteCollege(c *gin.Context) {
	if !allowed(c, h.owners.College(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}
	if err := h.collegeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCourses godoc
// GET /api/colleges/:id/courses
func (h *CollegeHandler) ListCourses(c *gin.Context) {
	courses, err := h.collegeService.ListCourses(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// AddCourse godoc
// POST /api/colleges/:id/courses
func (h *CollegeHandler) AddCourse(c *gin.Context) {
	if !allowed(c, h.owners.College(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}

	var req model.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.collegeService.AddCourse(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// ListApplications godoc
// GET /api/colleges/:id/applications
func (h *CollegeHandler) ListApplications(c *gin.Context) {
	if !allowed(c, h.owners.College(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}

	apps, err := h.applicationService.ListForCollege(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applications": apps})
}
