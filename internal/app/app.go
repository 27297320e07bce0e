package app

import (
	"career_compass_backend/internal/config"
	"career_compass_backend/internal/controller"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/service"
	"career_compass_backend/pkg/database"
	"career_compass_backend/pkg/logger"
	"career_compass_backend/pkg/monitoring"
	"career_compass_backend/pkg/security"
	"career_compass_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	onboarding     *repository.OnboardingRepository
	quizQuestion   *repository.QuizQuestionRepository
	quizAnswer     *repository.QuizAnswerRepository
	quizSubmission *repository.QuizSubmissionRepository
	recommendation *repository.RecommendationRepository
	material       *repository.MaterialRepository
}

type services struct {
	auth           *service.AuthService
	user           *service.UserService
	onboarding     *service.OnboardingService
	quiz           *service.QuizService
	recommendation *service.RecommendationService
	material       *service.MaterialService
	ai             *service.AIService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	onboarding *controller.OnboardingController
	quiz       *controller.QuizController
	career     *controller.CareerController
	material   *controller.MaterialController
	admin      *controller.AdminController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 应用热更新后的配置并通知已注册的回调
// 仅覆盖可以安全热替换的部分，数据库和服务端口需重启生效
func (a *App) ApplyConfig(newCfg *config.Config) {
	a.Config.AI = newCfg.AI
	a.Config.CORS = newCfg.CORS
	a.Config.RateLimit = newCfg.RateLimit

	for _, callback := range a.configCallbacks {
		callback(newCfg)
	}

	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		onboarding:     repository.NewOnboardingRepository(db),
		quizQuestion:   repository.NewQuizQuestionRepository(db),
		quizAnswer:     repository.NewQuizAnswerRepository(db),
		quizSubmission: repository.NewQuizSubmissionRepository(db),
		recommendation: repository.NewRecommendationRepository(db),
		material:       repository.NewMaterialRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.onboarding, repos.quizSubmission, repos.recommendation)
	s.onboarding = service.NewOnboardingService(repos.onboarding, repos.recommendation)
	s.quiz = service.NewQuizService(repos.quizQuestion, repos.quizAnswer, repos.quizSubmission, repos.onboarding)
	s.recommendation = service.NewRecommendationService(
		repos.recommendation,
		repos.onboarding,
		repos.quizQuestion,
		repos.quizAnswer,
		s.ai,
		rdb,
	)
	s.material = service.NewMaterialService(repos.material, repos.onboarding)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		onboarding: controller.NewOnboardingController(s.onboarding),
		quiz:       controller.NewQuizController(s.quiz),
		career:     controller.NewCareerController(s.recommendation),
		material:   controller.NewMaterialController(s.material),
		admin:      controller.NewAdminController(s.user),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// redis 只用于生成锁，不可用时降级为无锁模式
		logger.Log.Warn("Redis unavailable, generation locking disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("career-compass", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
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

	// 等待中断信号优雅地关闭服务器
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
