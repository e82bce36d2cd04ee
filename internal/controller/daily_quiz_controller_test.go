package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crackit_backend/internal/model"
	"crackit_backend/internal/service"
	"crackit_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

type stubQuizStore struct {
	questions map[string][]model.DailyQuiz
}

func (s *stubQuizStore) ListByDate(date time.Time) ([]model.DailyQuiz, error) {
	return s.questions[date.Format("2006-01-02")], nil
}

type stubAttemptStore struct{}

func (s *stubAttemptStore) Create(a *model.DailyQuizAttempt) error { return nil }

func (s *stubAttemptStore) FindByID(id uint) (*model.DailyQuizAttempt, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAttemptStore) FindByUserAndDate(userID uint, date time.Time) (*model.DailyQuizAttempt, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAttemptStore) ListByUser(userID uint) ([]model.DailyQuizAttempt, error) {
	return nil, nil
}

func newDailyQuizRouter(role string) (*gin.Engine, time.Time) {
	svc := service.NewDailyQuizService(&stubQuizStore{questions: map[string][]model.DailyQuiz{}}, &stubAttemptStore{}, nil, time.UTC)
	ctrl := NewDailyQuizController(svc, nil)

	router := gin.New()
	router.GET("/api/daily-quiz", func(c *gin.Context) {
		c.Set("user_id", uint(7))
		c.Set("role", role)
	}, ctrl.GetQuiz)
	return router, svc.Today()
}

func TestDailyQuizGet_FutureDateHiddenFromStudents(t *testing.T) {
	router, today := newDailyQuizRouter(model.RoleStudent)
	tomorrow := today.AddDate(0, 0, 1).Format("2006-01-02")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/daily-quiz?date="+tomorrow, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDailyQuizGet_FutureDateVisibleToAdmins(t *testing.T) {
	router, today := newDailyQuizRouter(model.RoleAdmin)
	tomorrow := today.AddDate(0, 0, 1).Format("2006-01-02")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/daily-quiz?date="+tomorrow, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDailyQuizGet_PastDateAllowed(t *testing.T) {
	router, today := newDailyQuizRouter(model.RoleStudent)
	yesterday := today.AddDate(0, 0, -1).Format("2006-01-02")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/daily-quiz?date="+yesterday, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
