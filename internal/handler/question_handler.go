package handler

import (
	"net/http"

	"github.com/careerbridge/careerbridge-backend/internal/middleware"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// QuestionHandler handles question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
	owners          *service.Ownership
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService, owners *service.Ownership) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, owners: owners}
}

// studentQuestion is the view of a question served to students: the
// answer key stays on the server.
type studentQuestion struct {
	ID              string                `json:"id"`
	CollegeID       *string               `json:"collegeId,omitempty"`
	Type            model.QuestionType    `json:"type"`
	Text            string                `json:"text"`
	Options         []studentOption       `json:"options"`
	DifficultyLevel model.DifficultyLevel `json:"difficultyLevel"`
	Categories      []string              `json:"categories"`
}

type studentOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// present redacts questions for student callers.
func present(c *gin.Context, questions []model.Question) (interface{}, error) {
	p := middleware.GetPrincipal(c)
	if p != nil && p.Role == model.RoleCollege {
		return questions, nil
	}
	out := make([]studentQuestion, 0, len(questions))
	if err := copier.CopyWithOption(&out, &questions, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return out, nil
}

// ListQuestions godoc
// GET /api/questions?collegeId=
// Lists all questions, or one college's partition.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context(), queryPtr(c, "collegeId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := present(c, questions)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": view})
}

// GetQuestion godoc
// GET /api/questions/:id?collegeId=
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	q, err := h.questionService.Get(c.Request.Context(), c.Param("id"), queryPtr(c, "collegeId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := present(c, []model.Question{*q})
	if err != nil {
		response.Error(c, err)
		return
	}
	if list, ok := view.([]studentQuestion); ok {
		response.Success(c, http.StatusOK, gin.H{"question": list[0]})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": q})
}

// CreateQuestion godoc
// POST /api/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req model.QuestionInput
	if !bindJSON(c, &req) {
		return
	}
	if !allowed(c, h.owners.QuestionPartition(c.Request.Context(), middleware.GetPrincipal(c), req.CollegeID)) {
		return
	}

	q, err := h.questionService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": q})
}

// UpdateQuestion godoc
// PUT /api/questions/:id
// Replaces a question's content; its id, college and creation time are kept.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	if !allowed(c, h.owners.Question(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}

	var req model.QuestionInput
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.questionService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": q})
}

// DeleteQuestion godoc
// DELETE /api/questions/:id?collegeId=
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if !allowed(c, h.owners.Question(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))) {
		return
	}
	if err := h.questionService.Delete(c.Request.Context(), c.Param("id"), queryPtr(c, "collegeId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkUpload godoc
// POST /api/questions/bulk
// Inserts every item independently and reports the rejected ones.
func (h *QuestionHandler) BulkUpload(c *gin.Context) {
	var req model.BulkUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	p := middleware.GetPrincipal(c)
	if !allowed(c, h.owners.QuestionPartition(c.Request.Context(), p, req.CollegeID)) {
		return
	}
	for _, item := range req.Questions {
		if item.CollegeID != nil && !allowed(c, h.owners.QuestionPartition(c.Request.Context(), p, item.CollegeID)) {
			return
		}
	}

	res := h.questionService.BulkUpload(c.Request.Context(), req.Questions, req.CollegeID)
	response.Success(c, http.StatusOK, res)
}
