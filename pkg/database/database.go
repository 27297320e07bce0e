package database

import (
	"career_compass_backend/internal/config"
	"career_compass_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	logMode := logger.Info
	if cfg.Server.Mode == "release" {
		logMode = logger.Warn
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过自动迁移，需通过 -migrate 显式开启
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		if err := SeedQuizQuestions(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.OnboardingProfile{},
		&model.QuizQuestion{},
		&model.QuizAnswer{},
		&model.QuizSubmission{},
		&model.CareerRecommendation{},
		&model.SkillGap{},
		&model.LearningRoadmap{},
		&model.LearningMaterial{},
	)
}
