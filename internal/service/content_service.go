package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"crackit_backend/internal/model"
	"crackit_backend/internal/repository"
	"crackit_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const contentCacheTTL = 5 * time.Minute

// ContentService serves the static study material: syllabi, previous papers,
// keywords, interview questions and formulas. Reads go through Redis, writes
// invalidate the affected cache keys.
type ContentService struct {
	syllabi   *repository.SyllabusRepository
	papers    *repository.PreviousPaperRepository
	keywords  *repository.KeywordRepository
	interview *repository.InterviewQuestionRepository
	formulas  *repository.FormulaRepository
	storage   StorageProvider
	redis     *redis.Client
}

func NewContentService(
	syllabi *repository.SyllabusRepository,
	papers *repository.PreviousPaperRepository,
	keywords *repository.KeywordRepository,
	interview *repository.InterviewQuestionRepository,
	formulas *repository.FormulaRepository,
	storage StorageProvider,
	redisClient *redis.Client,
) *ContentService {
	return &ContentService{
		syllabi:   syllabi,
		papers:    papers,
		keywords:  keywords,
		interview: interview,
		formulas:  formulas,
		storage:   storage,
		redis:     redisClient,
	}
}

// Syllabus

func (s *ContentService) ListSyllabi(ctx context.Context, board string, classLevel int, subject string) ([]model.Syllabus, error) {
	key := fmt.Sprintf("content:syllabus:%s:%d:%s", board, classLevel, subject)

	var items []model.Syllabus
	if s.cacheGet(ctx, key, &items) {
		return items, nil
	}

	items, err := s.syllabi.List(board, classLevel, subject)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, items)
	return items, nil
}

func (s *ContentService) CreateSyllabus(ctx context.Context, sy *model.Syllabus, pdf *multipart.FileHeader) error {
	if pdf != nil {
		url, err := s.uploadFile(ctx, "syllabus_pdfs", pdf)
		if err != nil {
			return err
		}
		sy.PDFURL = url
	}
	if err := s.syllabi.Create(sy); err != nil {
		return err
	}
	s.invalidate(ctx, "content:syllabus:*")
	return nil
}

func (s *ContentService) UpdateSyllabus(ctx context.Context, sy *model.Syllabus) error {
	if err := s.syllabi.Update(sy); err != nil {
		return err
	}
	s.invalidate(ctx, "content:syllabus:*")
	return nil
}

func (s *ContentService) DeleteSyllabus(ctx context.Context, id uint) error {
	if err := s.syllabi.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, "content:syllabus:*")
	return nil
}

func (s *ContentService) GetSyllabus(id uint) (*model.Syllabus, error) {
	return s.syllabi.FindByID(id)
}

// Previous papers

func (s *ContentService) ListPapers(ctx context.Context, year int, examType string) ([]model.PreviousPaper, error) {
	key := fmt.Sprintf("content:papers:%d:%s", year, examType)

	var items []model.PreviousPaper
	if s.cacheGet(ctx, key, &items) {
		return items, nil
	}

	items, err := s.papers.List(year, examType)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, items)
	return items, nil
}

func (s *ContentService) CreatePaper(ctx context.Context, p *model.PreviousPaper, file *multipart.FileHeader) error {
	if file != nil {
		url, err := s.uploadFile(ctx, "papers", file)
		if err != nil {
			return err
		}
		p.FileURL = url
	}
	if err := s.papers.Create(p); err != nil {
		return err
	}
	s.invalidate(ctx, "content:papers:*")
	return nil
}

func (s *ContentService) UpdatePaper(ctx context.Context, p *model.PreviousPaper) error {
	if err := s.papers.Update(p); err != nil {
		return err
	}
	s.invalidate(ctx, "content:papers:*")
	return nil
}

func (s *ContentService) DeletePaper(ctx context.Context, id uint) error {
	if err := s.papers.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, "content:papers:*")
	return nil
}

// Keywords

func (s *ContentService) ListKeywords(ctx context.Context, subject, search string) ([]model.Keyword, error) {
	// Search queries bypass the cache, only plain subject listings are cached.
	if search != "" {
		return s.keywords.List(subject, search)
	}

	key := "content:keywords:" + subject
	var items []model.Keyword
	if s.cacheGet(ctx, key, &items) {
		return items, nil
	}

	items, err := s.keywords.List(subject, "")
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, items)
	return items, nil
}

func (s *ContentService) CreateKeyword(ctx context.Context, k *model.Keyword) error {
	if err := s.keywords.Create(k); err != nil {
		return err
	}
	s.invalidate(ctx, "content:keywords:*")
	return nil
}

func (s *ContentService) UpdateKeyword(ctx context.Context, k *model.Keyword) error {
	if err := s.keywords.Update(k); err != nil {
		return err
	}
	s.invalidate(ctx, "content:keywords:*")
	return nil
}

func (s *ContentService) DeleteKeyword(ctx context.Context, id uint) error {
	if err := s.keywords.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, "content:keywords:*")
	return nil
}

// Interview questions

type InterviewQuestionView struct {
	ID              uint   `json:"id"`
	Department      string `json:"department"`
	DepartmentLabel string `json:"department_label"`
	Question        string `json:"question"`
	Answer          string `json:"answer"`
}

func (s *ContentService) ListInterviewQuestions(department string) ([]InterviewQuestionView, error) {
	items, err := s.interview.ListByDepartment(department)
	if err != nil {
		return nil, err
	}

	views := make([]InterviewQuestionView, 0, len(items))
	for _, q := range items {
		views = append(views, InterviewQuestionView{
			ID:              q.ID,
			Department:      q.Department,
			DepartmentLabel: model.DepartmentLabel(q.Department),
			Question:        q.Question,
			Answer:          q.Answer,
		})
	}
	return views, nil
}

type DepartmentView struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

func (s *ContentService) ListDepartments() ([]DepartmentView, error) {
	slugs, err := s.interview.Departments()
	if err != nil {
		return nil, err
	}

	views := make([]DepartmentView, 0, len(slugs))
	for _, slug := range slugs {
		views = append(views, DepartmentView{Slug: slug, Label: model.DepartmentLabel(slug)})
	}
	return views, nil
}

func (s *ContentService) CreateInterviewQuestion(q *model.InterviewQuestion) error {
	return s.interview.Create(q)
}

func (s *ContentService) UpdateInterviewQuestion(q *model.InterviewQuestion) error {
	return s.interview.Update(q)
}

func (s *ContentService) DeleteInterviewQuestion(id uint) error {
	return s.interview.Delete(id)
}

// Formulas

func (s *ContentService) ListFormulas(ctx context.Context, subject string) ([]model.Formula, error) {
	key := "content:formulas:" + subject
	var items []model.Formula
	if s.cacheGet(ctx, key, &items) {
		return items, nil
	}

	items, err := s.formulas.List(subject)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, items)
	return items, nil
}

func (s *ContentService) CreateFormula(ctx context.Context, f *model.Formula) error {
	if err := s.formulas.Create(f); err != nil {
		return err
	}
	s.invalidate(ctx, "content:formulas:*")
	return nil
}

func (s *ContentService) UpdateFormula(ctx context.Context, f *model.Formula) error {
	if err := s.formulas.Update(f); err != nil {
		return err
	}
	s.invalidate(ctx, "content:formulas:*")
	return nil
}

func (s *ContentService) DeleteFormula(ctx context.Context, id uint) error {
	if err := s.formulas.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, "content:formulas:*")
	return nil
}

// IsNotFound lets controllers translate repository lookups uniformly.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (s *ContentService) uploadFile(ctx context.Context, prefix string, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")

	return s.storage.Upload(ctx, filename, src, header.Size, contentType)
}

func (s *ContentService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}
	cached, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dest) == nil
}

func (s *ContentService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, contentCacheTTL).Err(); err != nil {
		logger.Log.Warn("Failed to cache content", zap.String("key", key), zap.Error(err))
	}
}

func (s *ContentService) invalidate(ctx context.Context, pattern string) {
	if s.redis == nil {
		return
	}
	keys, err := s.redis.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate content cache", zap.String("pattern", pattern), zap.Error(err))
	}
}
