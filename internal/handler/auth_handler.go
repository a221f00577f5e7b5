package handler

import (
	"net/http"

	"github.com/careerbridge/careerbridge-backend/internal/middleware"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /api/auth/login
// Exchanges email and password for an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sess)
}

// RegisterStudent godoc
// POST /api/auth/register/student
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req model.RegisterStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.authService.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"student": st})
}

// RegisterCollege godoc
// POST /api/auth/register/college
// The college starts unverified and stays out of the directory until verified.
func (h *AuthHandler) RegisterCollege(c *gin.Context) {
	var req model.RegisterCollegeRequest
	if !bindJSON(c, &req) {
		return
	}

	college, err := h.authService.RegisterCollege(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"college": college})
}

// Logout godoc
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), c.GetString(middleware.ContextKeyToken)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Verify godoc
// GET /api/auth/verify
// Returns the principal of the bearer token.
func (h *AuthHandler) Verify(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"principal": p})
}
