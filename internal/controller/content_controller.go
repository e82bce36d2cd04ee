package controller

import (
	"strconv"
	"time"

	"crackit_backend/internal/model"
	"crackit_backend/internal/service"
	"crackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController exposes the study material reads plus their admin CRUD.
type ContentController struct {
	Service *service.ContentService
}

func NewContentController(svc *service.ContentService) *ContentController {
	return &ContentController{Service: svc}
}

// @Summary List syllabi
// @Tags content
// @Produce json
// @Param board query string false "board filter"
// @Param class_level query int false "class level filter"
// @Param subject query string false "subject filter"
// @Success 200 {object} util.Response
// @Router /api/syllabus [get]
func (c *ContentController) ListSyllabi(ctx *gin.Context) {
	classLevel, _ := strconv.Atoi(ctx.Query("class_level"))

	items, err := c.Service.ListSyllabi(ctx.Request.Context(), ctx.Query("board"), classLevel, ctx.Query("subject"))
	if err != nil {
		util.InternalError(ctx, "failed to load syllabi")
		return
	}
	util.Success(ctx, items)
}

// @Summary Create a syllabus entry
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param board formData string true "board"
// @Param class_level formData int true "class level"
// @Param subject formData string true "subject"
// @Param content formData string false "content"
// @Param pdf formData file false "syllabus PDF"
// @Success 201 {object} util.Response
// @Router /api/admin/syllabus [post]
func (c *ContentController) CreateSyllabus(ctx *gin.Context) {
	classLevel, err := strconv.Atoi(ctx.PostForm("class_level"))
	if err != nil {
		util.BadRequest(ctx, "class_level must be a number")
		return
	}

	sy := &model.Syllabus{
		Board:      ctx.PostForm("board"),
		ClassLevel: classLevel,
		Subject:    ctx.PostForm("subject"),
		Content:    ctx.PostForm("content"),
	}
	if sy.Board == "" || sy.Subject == "" {
		util.BadRequest(ctx, "board and subject are required")
		return
	}

	pdf, _ := ctx.FormFile("pdf")
	if err := c.Service.CreateSyllabus(ctx.Request.Context(), sy, pdf); err != nil {
		util.InternalError(ctx, "failed to create syllabus")
		return
	}
	util.Created(ctx, sy)
}

// @Summary Update a syllabus entry
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "syllabus id"
// @Success 200 {object} util.Response
// @Router /api/admin/syllabus/{id} [put]
func (c *ContentController) UpdateSyllabus(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	sy, err := c.Service.GetSyllabus(uint(id))
	if err != nil {
		util.NotFound(ctx, "syllabus not found")
		return
	}

	var req struct {
		Board      *string `json:"board"`
		ClassLevel *int    `json:"class_level"`
		Subject    *string `json:"subject"`
		Content    *string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Board != nil {
		sy.Board = *req.Board
	}
	if req.ClassLevel != nil {
		sy.ClassLevel = *req.ClassLevel
	}
	if req.Subject != nil {
		sy.Subject = *req.Subject
	}
	if req.Content != nil {
		sy.Content = *req.Content
	}

	if err := c.Service.UpdateSyllabus(ctx.Request.Context(), sy); err != nil {
		util.InternalError(ctx, "failed to update syllabus")
		return
	}
	util.Success(ctx, sy)
}

// @Summary Delete a syllabus entry
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "syllabus id"
// @Success 200 {object} util.Response
// @Router /api/admin/syllabus/{id} [delete]
func (c *ContentController) DeleteSyllabus(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Service.DeleteSyllabus(ctx.Request.Context(), uint(id)); err != nil {
		util.InternalError(ctx, "failed to delete syllabus")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary List previous papers
// @Tags content
// @Produce json
// @Param year query int false "year filter"
// @Param exam_type query string false "Prelims or Main"
// @Success 200 {object} util.Response
// @Router /api/previous-papers [get]
func (c *ContentController) ListPapers(ctx *gin.Context) {
	year, _ := strconv.Atoi(ctx.Query("year"))

	items, err := c.Service.ListPapers(ctx.Request.Context(), year, ctx.Query("exam_type"))
	if err != nil {
		util.InternalError(ctx, "failed to load papers")
		return
	}
	util.Success(ctx, items)
}

// @Summary Upload a previous paper
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "title"
// @Param year formData int true "year"
// @Param exam_type formData string false "Prelims or Main"
// @Param file formData file true "paper PDF"
// @Success 201 {object} util.Response
// @Router /api/admin/previous-papers [post]
func (c *ContentController) CreatePaper(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.PostForm("year"))
	if err != nil {
		util.BadRequest(ctx, "year must be a number")
		return
	}

	examType := ctx.PostForm("exam_type")
	if examType != "" && examType != model.ExamTypePrelims && examType != model.ExamTypeMain {
		util.BadRequest(ctx, "exam_type must be Prelims or Main")
		return
	}

	p := &model.PreviousPaper{
		Title:    ctx.PostForm("title"),
		Year:     year,
		ExamType: examType,
	}
	if p.Title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	if err := c.Service.CreatePaper(ctx.Request.Context(), p, file); err != nil {
		util.InternalError(ctx, "failed to create paper")
		return
	}
	util.Created(ctx, p)
}

// @Summary Delete a previous paper
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "paper id"
// @Success 200 {object} util.Response
// @Router /api/admin/previous-papers/{id} [delete]
func (c *ContentController) DeletePaper(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Service.DeletePaper(ctx.Request.Context(), uint(id)); err != nil {
		util.InternalError(ctx, "failed to delete paper")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary List glossary keywords
// @Tags content
// @Produce json
// @Param subject query string false "subject filter"
// @Param search query string false "search in word and meaning"
// @Success 200 {object} util.Response
// @Router /api/keywords [get]
func (c *ContentController) ListKeywords(ctx *gin.Context) {
	items, err := c.Service.ListKeywords(ctx.Request.Context(), ctx.Query("subject"), ctx.Query("search"))
	if err != nil {
		util.InternalError(ctx, "failed to load keywords")
		return
	}
	util.Success(ctx, items)
}

// @Summary Create a keyword
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/admin/keywords [post]
func (c *ContentController) CreateKeyword(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Subject string `json:"subject"`
		Word    string `json:"word"`
		Meaning string `json:"meaning" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	k := &model.Keyword{Title: req.Title, Subject: req.Subject, Word: req.Word, Meaning: req.Meaning}
	if err := c.Service.CreateKeyword(ctx.Request.Context(), k); err != nil {
		util.InternalError(ctx, "failed to create keyword")
		return
	}
	util.Created(ctx, k)
}

// @Summary Delete a keyword
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "keyword id"
// @Success 200 {object} util.Response
// @Router /api/admin/keywords/{id} [delete]
func (c *ContentController) DeleteKeyword(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Service.DeleteKeyword(ctx.Request.Context(), uint(id)); err != nil {
		util.InternalError(ctx, "failed to delete keyword")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary List interview questions
// @Tags content
// @Produce json
// @Param department query string false "department slug"
// @Success 200 {object} util.Response
// @Router /api/interview-questions [get]
func (c *ContentController) ListInterviewQuestions(ctx *gin.Context) {
	items, err := c.Service.ListInterviewQuestions(ctx.Query("department"))
	if err != nil {
		util.InternalError(ctx, "failed to load interview questions")
		return
	}
	util.Success(ctx, items)
}

// @Summary List departments that have interview questions
// @Tags content
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/interview-questions/departments [get]
func (c *ContentController) ListDepartments(ctx *gin.Context) {
	items, err := c.Service.ListDepartments()
	if err != nil {
		util.InternalError(ctx, "failed to load departments")
		return
	}
	util.Success(ctx, items)
}

// @Summary Create an interview question
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/admin/interview-questions [post]
func (c *ContentController) CreateInterviewQuestion(ctx *gin.Context) {
	var req struct {
		Department string `json:"department" binding:"required"`
		Question   string `json:"question" binding:"required"`
		Answer     string `json:"answer" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q := &model.InterviewQuestion{Department: req.Department, Question: req.Question, Answer: req.Answer}
	if err := c.Service.CreateInterviewQuestion(q); err != nil {
		util.InternalError(ctx, "failed to create interview question")
		return
	}
	util.Created(ctx, q)
}

// @Summary Delete an interview question
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/interview-questions/{id} [delete]
func (c *ContentController) DeleteInterviewQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Service.DeleteInterviewQuestion(uint(id)); err != nil {
		util.InternalError(ctx, "failed to delete interview question")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary List formulas
// @Tags content
// @Produce json
// @Param subject query string false "subject filter"
// @Success 200 {object} util.Response
// @Router /api/formulas [get]
func (c *ContentController) ListFormulas(ctx *gin.Context) {
	items, err := c.Service.ListFormulas(ctx.Request.Context(), ctx.Query("subject"))
	if err != nil {
		util.InternalError(ctx, "failed to load formulas")
		return
	}
	util.Success(ctx, items)
}

// @Summary Create a formula
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/admin/formulas [post]
func (c *ContentController) CreateFormula(ctx *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Heading string `json:"heading" binding:"required"`
		Formula string `json:"formula" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	f := &model.Formula{Subject: req.Subject, Heading: req.Heading, Formula: req.Formula}
	if err := c.Service.CreateFormula(ctx.Request.Context(), f); err != nil {
		util.InternalError(ctx, "failed to create formula")
		return
	}
	util.Created(ctx, f)
}

// @Summary Delete a formula
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "formula id"
// @Success 200 {object} util.Response
// @Router /api/admin/formulas/{id} [delete]
func (c *ContentController) DeleteFormula(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Service.DeleteFormula(ctx.Request.Context(), uint(id)); err != nil {
		util.InternalError(ctx, "failed to delete formula")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// parseDate accepts YYYY-MM-DD.
func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}
