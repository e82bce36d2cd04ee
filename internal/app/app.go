package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crackit_backend/internal/config"
	"crackit_backend/internal/controller"
	"crackit_backend/internal/repository"
	"crackit_backend/internal/service"
	"crackit_backend/pkg/configwatcher"
	"crackit_backend/pkg/database"
	"crackit_backend/pkg/logger"
	"crackit_backend/pkg/monitoring"
	"crackit_backend/pkg/security"
	"crackit_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user             *repository.UserRepository
	syllabus         *repository.SyllabusRepository
	previousPaper    *repository.PreviousPaperRepository
	keyword          *repository.KeywordRepository
	interview        *repository.InterviewQuestionRepository
	formula          *repository.FormulaRepository
	mockTest         *repository.MockTestRepository
	testAttempt      *repository.TestAttemptRepository
	dailyQuiz        *repository.DailyQuizRepository
	dailyQuizAttempt *repository.DailyQuizAttemptRepository
	chat             *repository.ChatRepository
}

type services struct {
	auth      *service.AuthService
	content   *service.ContentService
	mockTest  *service.MockTestService
	dailyQuiz *service.DailyQuizService
	admin     *service.AdminService
	ai        *service.AIService
	chat      *service.ChatService
	storage   service.StorageProvider
}

type controllers struct {
	auth      *controller.AuthController
	content   *controller.ContentController
	mockTest  *controller.MockTestController
	dailyQuiz *controller.DailyQuizController
	chat      *controller.ChatController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:             repository.NewUserRepository(db),
		syllabus:         repository.NewSyllabusRepository(db),
		previousPaper:    repository.NewPreviousPaperRepository(db),
		keyword:          repository.NewKeywordRepository(db),
		interview:        repository.NewInterviewQuestionRepository(db),
		formula:          repository.NewFormulaRepository(db),
		mockTest:         repository.NewMockTestRepository(db),
		testAttempt:      repository.NewTestAttemptRepository(db),
		dailyQuiz:        repository.NewDailyQuizRepository(db),
		dailyQuizAttempt: repository.NewDailyQuizAttemptRepository(db),
		chat:             repository.NewChatRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	s.storage = storage

	// Timezone is validated at config load time.
	loc, err := time.LoadLocation(cfg.Quiz.Timezone)
	if err != nil {
		logger.Log.Fatal("Invalid quiz timezone", zap.Error(err))
	}

	s.auth = service.NewAuthService(repos.user, cfg.JWT)
	s.content = service.NewContentService(
		repos.syllabus,
		repos.previousPaper,
		repos.keyword,
		repos.interview,
		repos.formula,
		storage,
		rdb,
	)
	s.mockTest = service.NewMockTestService(repos.mockTest, repos.testAttempt, cfg.Quiz.MaxMockTestAttempts)
	s.dailyQuiz = service.NewDailyQuizService(repos.dailyQuiz, repos.dailyQuizAttempt, rdb, loc)
	s.admin = service.NewAdminService(repos.mockTest, repos.dailyQuiz, s.dailyQuiz)
	s.ai = service.NewAIService(cfg.AI)
	s.chat = service.NewChatService(repos.chat, s.ai)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		content:   controller.NewContentController(s.content),
		mockTest:  controller.NewMockTestController(s.mockTest, s.admin),
		dailyQuiz: controller.NewDailyQuizController(s.dailyQuiz, s.admin),
		chat:      controller.NewChatController(s.chat),
		health:    controller.NewHealthController(),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	if err := database.InitDB(cfg); err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := database.InitRedis(cfg); err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     database.DB,
		Redis:  database.RedisClient,
	}

	repos := app.initRepositories(app.DB)
	services := app.initServices(repos, cfg, app.Redis)
	controllers := app.initControllers(services)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("crackit-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig(services)

	return app
}

// watchConfig hot-reloads the settings that are safe to change at runtime.
func (a *App) watchConfig(s *services) {
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(newCfg interface{}) {
		cfg, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		a.Config.Quiz.MaxMockTestAttempts = cfg.Quiz.MaxMockTestAttempts
		s.mockTest.SetMaxAttempts(cfg.Quiz.MaxMockTestAttempts)
		logger.Log.Info("Configuration reloaded",
			zap.Int("max_mock_test_attempts", cfg.Quiz.MaxMockTestAttempts))
	})
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
