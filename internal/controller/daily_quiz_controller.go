package controller

import (
	"errors"
	"strconv"
	"time"

	"crackit_backend/internal/middleware"
	"crackit_backend/internal/model"
	"crackit_backend/internal/service"
	"crackit_backend/internal/util"
	"crackit_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type DailyQuizController struct {
	Service *service.DailyQuizService
	Admin   *service.AdminService
}

func NewDailyQuizController(svc *service.DailyQuizService, admin *service.AdminService) *DailyQuizController {
	return &DailyQuizController{Service: svc, Admin: admin}
}

// quizDate resolves the effective quiz date: today in the configured
// timezone unless an explicit ?date= is given.
func (c *DailyQuizController) quizDate(ctx *gin.Context) (time.Time, error) {
	if raw := ctx.Query("date"); raw != "" {
		return parseDate(raw)
	}
	return c.Service.Today(), nil
}

// @Summary Get the daily quiz and the caller's attempt state
// @Tags daily-quiz
// @Produce json
// @Security BearerAuth
// @Param date query string false "quiz date, defaults to today (YYYY-MM-DD)"
// @Success 200 {object} util.Response
// @Router /api/daily-quiz [get]
func (c *DailyQuizController) GetQuiz(ctx *gin.Context) {
	date, err := c.quizDate(ctx)
	if err != nil {
		util.BadRequest(ctx, "date must be YYYY-MM-DD")
		return
	}
	// Scheduled questions stay hidden until quiz day.
	if date.After(c.Service.Today()) && !middleware.IsAdmin(ctx) {
		util.Forbidden(ctx, "quiz not available yet")
		return
	}

	view, err := c.Service.GetQuiz(ctx.Request.Context(), middleware.CurrentUserID(ctx), date)
	if err != nil {
		util.InternalError(ctx, "failed to load daily quiz")
		return
	}
	util.Success(ctx, view)
}

type SubmitDailyQuizRequest struct {
	// Answers are positional, one entry per question in serving order.
	// Blank entries mark skipped questions.
	Answers []string `json:"answers" binding:"required"`
}

// @Summary Submit the daily quiz (one attempt per day)
// @Tags daily-quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitDailyQuizRequest true "ordered answers"
// @Success 201 {object} util.Response
// @Router /api/daily-quiz/submit [post]
func (c *DailyQuizController) Submit(ctx *gin.Context) {
	var req SubmitDailyQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), middleware.CurrentUserID(ctx), c.Service.Today(), req.Answers)
	if err != nil {
		monitoring.QuizSubmissionCounter.WithLabelValues("daily_quiz", "error").Inc()
		switch {
		case errors.Is(err, util.ErrNoQuizAvailable):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyAttempted):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidOption):
			util.BadRequest(ctx, err.Error())
		default:
			util.InternalError(ctx, "failed to submit daily quiz")
		}
		return
	}

	monitoring.QuizSubmissionCounter.WithLabelValues("daily_quiz", "ok").Inc()
	util.Created(ctx, result)
}

// @Summary List the caller's daily quiz attempts
// @Tags daily-quiz
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/daily-quiz/attempts [get]
func (c *DailyQuizController) ListAttempts(ctx *gin.Context) {
	attempts, err := c.Service.ListAttempts(middleware.CurrentUserID(ctx))
	if err != nil {
		util.InternalError(ctx, "failed to load attempts")
		return
	}
	util.Success(ctx, attempts)
}

// @Summary Get one daily quiz attempt with per-question breakdown
// @Tags daily-quiz
// @Produce json
// @Security BearerAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response
// @Router /api/daily-quiz/attempts/{id} [get]
func (c *DailyQuizController) AttemptDetail(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	detail, err := c.Service.AttemptDetail(ctx.Request.Context(), middleware.CurrentUserID(ctx), uint(id), middleware.IsAdmin(ctx))
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

type CreateDailyQuizRequest struct {
	Question      string `json:"question" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectOption string `json:"correct_option" binding:"required"`
	QuizDate      string `json:"quiz_date" binding:"required"`
}

// @Summary Schedule a daily quiz question
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateDailyQuizRequest true "question and date"
// @Success 201 {object} util.Response
// @Router /api/admin/daily-quiz [post]
func (c *DailyQuizController) CreateQuestion(ctx *gin.Context) {
	var req CreateDailyQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	date, err := parseDate(req.QuizDate)
	if err != nil {
		util.BadRequest(ctx, "quiz_date must be YYYY-MM-DD")
		return
	}

	q := &model.DailyQuiz{
		Question:      req.Question,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: model.AnswerOption(req.CorrectOption),
		QuizDate:      date,
	}
	if err := c.Admin.CreateDailyQuiz(ctx.Request.Context(), q); err != nil {
		if errors.Is(err, util.ErrInvalidOption) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.InternalError(ctx, "failed to create daily quiz question")
		return
	}
	util.Created(ctx, q)
}

// @Summary List scheduled daily quiz questions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param from query string false "start date, defaults to today (YYYY-MM-DD)"
// @Success 200 {object} util.Response
// @Router /api/admin/daily-quiz [get]
func (c *DailyQuizController) ListScheduled(ctx *gin.Context) {
	from := c.Service.Today()
	if raw := ctx.Query("from"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			util.BadRequest(ctx, "from must be YYYY-MM-DD")
			return
		}
		from = parsed
	}

	questions, err := c.Admin.ListUpcomingDailyQuiz(from)
	if err != nil {
		util.InternalError(ctx, "failed to load scheduled questions")
		return
	}
	util.Success(ctx, questions)
}

// @Summary Delete a daily quiz question
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/daily-quiz/{id} [delete]
func (c *DailyQuizController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Admin.DeleteDailyQuiz(ctx.Request.Context(), uint(id)); err != nil {
		if service.IsNotFound(err) {
			util.NotFound(ctx, "question not found")
			return
		}
		util.InternalError(ctx, "failed to delete question")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
