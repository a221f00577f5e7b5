package handler

import (
	"net/http"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles college decisions on applications.
type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Decide godoc
// POST /api/applications/:id/decision
// Approves or rejects a pending application. Only the owning college may decide.
func (h *ApplicationHandler) Decide(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.DecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationService.Decide(c.Request.Context(), c.Param("id"), req.Decision, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"application": app})
}
