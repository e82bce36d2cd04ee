package controller

import (
	"errors"
	"strconv"

	"crackit_backend/internal/middleware"
	"crackit_backend/internal/model"
	"crackit_backend/internal/service"
	"crackit_backend/internal/util"
	"crackit_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type MockTestController struct {
	Service *service.MockTestService
	Admin   *service.AdminService
}

func NewMockTestController(svc *service.MockTestService, admin *service.AdminService) *MockTestController {
	return &MockTestController{Service: svc, Admin: admin}
}

// @Summary List mock tests
// @Tags mock-tests
// @Produce json
// @Param subject query string false "subject filter"
// @Param class_level query int false "class level filter"
// @Success 200 {object} util.Response
// @Router /api/mock-tests [get]
func (c *MockTestController) ListTests(ctx *gin.Context) {
	classLevel, _ := strconv.Atoi(ctx.Query("class_level"))

	tests, err := c.Service.ListTests(ctx.Query("subject"), classLevel)
	if err != nil {
		util.InternalError(ctx, "failed to load mock tests")
		return
	}
	util.Success(ctx, tests)
}

// @Summary Get a mock test's questions without answers
// @Tags mock-tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "mock test id"
// @Success 200 {object} util.Response
// @Router /api/mock-tests/{id}/questions [get]
func (c *MockTestController) GetQuestions(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	questions, err := c.Service.GetQuestions(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrMockTestNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.InternalError(ctx, "failed to load questions")
		return
	}
	util.Success(ctx, questions)
}

type SubmitTestRequest struct {
	// Answers maps question id to the selected option letter.
	Answers map[uint]string `json:"answers" binding:"required"`
}

// @Summary Submit answers for a mock test
// @Tags mock-tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "mock test id"
// @Param body body SubmitTestRequest true "answers keyed by question id"
// @Success 201 {object} util.Response
// @Router /api/mock-tests/{id}/submit [post]
func (c *MockTestController) Submit(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(middleware.CurrentUserID(ctx), uint(id), req.Answers)
	if err != nil {
		monitoring.QuizSubmissionCounter.WithLabelValues("mock_test", "error").Inc()
		switch {
		case errors.Is(err, util.ErrMockTestNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidOption):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAttemptsExceeded):
			util.Forbidden(ctx, err.Error())
		default:
			util.InternalError(ctx, "failed to submit test")
		}
		return
	}

	monitoring.QuizSubmissionCounter.WithLabelValues("mock_test", "ok").Inc()
	util.Created(ctx, result)
}

// @Summary List the caller's mock test attempts
// @Tags mock-tests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *MockTestController) ListAttempts(ctx *gin.Context) {
	attempts, err := c.Service.ListAttempts(middleware.CurrentUserID(ctx))
	if err != nil {
		util.InternalError(ctx, "failed to load attempts")
		return
	}
	util.Success(ctx, attempts)
}

// @Summary Get one attempt with per-question breakdown
// @Tags mock-tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *MockTestController) AttemptDetail(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	detail, err := c.Service.AttemptDetail(middleware.CurrentUserID(ctx), uint(id), middleware.IsAdmin(ctx))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.InternalError(ctx, "failed to load attempt")
		return
	}
	util.Success(ctx, detail)
}

// Admin handlers

type CreateMockTestRequest struct {
	Subject     string `json:"subject" binding:"required"`
	ClassLevel  int    `json:"class_level"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Questions   []struct {
		QuestionText  string `json:"question_text" binding:"required"`
		OptionA       string `json:"option_a" binding:"required"`
		OptionB       string `json:"option_b" binding:"required"`
		OptionC       string `json:"option_c" binding:"required"`
		OptionD       string `json:"option_d" binding:"required"`
		CorrectOption string `json:"correct_option" binding:"required"`
	} `json:"questions"`
}

// @Summary Create a mock test with questions
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMockTestRequest true "test definition"
// @Success 201 {object} util.Response
// @Router /api/admin/mock-tests [post]
func (c *MockTestController) CreateTest(ctx *gin.Context) {
	var req CreateMockTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		util.BadRequest(ctx, "date must be YYYY-MM-DD")
		return
	}

	test := &model.MockTest{
		Subject:     req.Subject,
		ClassLevel:  req.ClassLevel,
		Description: req.Description,
		Date:        date,
	}
	for _, q := range req.Questions {
		test.Questions = append(test.Questions, model.Question{
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: model.AnswerOption(q.CorrectOption),
		})
	}

	if err := c.Admin.CreateMockTest(test); err != nil {
		if errors.Is(err, util.ErrInvalidOption) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.InternalError(ctx, "failed to create mock test")
		return
	}
	util.Created(ctx, test)
}

// @Summary Get a mock test with answers for editing
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "mock test id"
// @Success 200 {object} util.Response
// @Router /api/admin/mock-tests/{id} [get]
func (c *MockTestController) GetTest(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	test, err := c.Admin.GetMockTest(uint(id))
	if err != nil {
		util.NotFound(ctx, "mock test not found")
		return
	}

	// Expose correct options to the admin editor only.
	questions := make([]gin.H, 0, len(test.Questions))
	for _, q := range test.Questions {
		questions = append(questions, gin.H{
			"id":             q.ID,
			"question_text":  q.QuestionText,
			"option_a":       q.OptionA,
			"option_b":       q.OptionB,
			"option_c":       q.OptionC,
			"option_d":       q.OptionD,
			"correct_option": q.CorrectOption,
		})
	}
	util.Success(ctx, gin.H{"test": test, "questions": questions})
}

// @Summary Delete a mock test
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "mock test id"
// @Success 200 {object} util.Response
// @Router /api/admin/mock-tests/{id} [delete]
func (c *MockTestController) DeleteTest(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Admin.DeleteMockTest(uint(id)); err != nil {
		util.InternalError(ctx, "failed to delete mock test")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

type AddQuestionRequest struct {
	QuestionText  string `json:"question_text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectOption string `json:"correct_option" binding:"required"`
}

// @Summary Add a question to a mock test
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "mock test id"
// @Param body body AddQuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/admin/mock-tests/{id}/questions [post]
func (c *MockTestController) AddQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q := &model.Question{
		MockTestID:    uint(id),
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: model.AnswerOption(req.CorrectOption),
	}
	if err := c.Admin.AddQuestion(q); err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidOption):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrMockTestNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.InternalError(ctx, "failed to add question")
		}
		return
	}
	util.Created(ctx, q)
}

// @Summary Delete a question
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *MockTestController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Admin.DeleteQuestion(uint(id)); err != nil {
		util.InternalError(ctx, "failed to delete question")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
