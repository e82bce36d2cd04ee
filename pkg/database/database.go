package database

import (
	"fmt"
	"time"

	"crackit_backend/internal/config"
	"crackit_backend/internal/model"
	"crackit_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db

	if cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return err
		}
		if err := Seed(db); err != nil {
			return err
		}
	}

	return nil
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	logger.Log.Info("Running database migrations")

	err := db.AutoMigrate(
		&model.User{},
		&model.Syllabus{},
		&model.PreviousPaper{},
		&model.Keyword{},
		&model.InterviewQuestion{},
		&model.Formula{},
		&model.MockTest{},
		&model.Question{},
		&model.TestAttempt{},
		&model.UserAnswer{},
		&model.DailyQuiz{},
		&model.DailyQuizAttempt{},
		&model.ChatConversation{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	logger.Log.Info("Database migrations completed")
	return nil
}

// Seed creates the default admin account if no admin exists yet.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:     "Administrator",
		Email:    "admin@crackit.local",
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Log.Info("Seeded default admin account", zap.String("email", admin.Email))
	return nil
}
