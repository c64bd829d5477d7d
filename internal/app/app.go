package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"silabo_backend/internal/config"
	"silabo_backend/internal/controller"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/service"
	"silabo_backend/pkg/database"
	"silabo_backend/pkg/logger"
	"silabo_backend/pkg/monitoring"
	"silabo_backend/pkg/security"
	"silabo_backend/pkg/tracing"

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
	user       *repository.UserRepository
	course     *repository.CourseRepository
	review     *repository.ReviewRepository
	research   *repository.ResearchRepository
	comparison *repository.ComparisonRepository
	activity   *repository.ActivityRepository
	slide      *repository.SlideRepository
	reviewer   *repository.ReviewerRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	ai         *service.AIService
	perplexity *service.PerplexityService
	course     *service.CourseService
	review     *service.ReviewService
	research   *service.ResearchService
	comparison *service.ComparisonService
	activity   *service.ActivityService
	slide      *service.SlideService
	reviewer   *service.ReviewerService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	review     *controller.ReviewController
	research   *controller.ResearchController
	comparison *controller.ComparisonController
	activity   *controller.ActivityController
	slide      *controller.SlideController
	reviewer   *controller.ReviewerController
	ai         *controller.AIController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		review:     repository.NewReviewRepository(db),
		research:   repository.NewResearchRepository(db),
		comparison: repository.NewComparisonRepository(db),
		activity:   repository.NewActivityRepository(db),
		slide:      repository.NewSlideRepository(db),
		reviewer:   repository.NewReviewerRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(&cfg.AI)
	s.perplexity = service.NewPerplexityService(&cfg.Research)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.course = service.NewCourseService(repos.course, repos.comparison, s.storage)
	s.review = service.NewReviewService(repos.course, repos.review, s.storage, s.ai)
	s.research = service.NewResearchService(s.review, repos.research, s.ai, s.perplexity, rdb)
	s.comparison = service.NewComparisonService(s.research, repos.comparison, s.storage, s.ai)
	s.activity = service.NewActivityService(s.review, repos.activity, s.ai)
	s.slide = service.NewSlideService(repos.course, s.research, repos.slide, s.ai)
	s.reviewer = service.NewReviewerService(repos.course, repos.reviewer)

	return s
}

func (a *App) initControllers(s *services, cfg *config.Config, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course),
		review:     controller.NewReviewController(s.review),
		research:   controller.NewResearchController(s.research),
		comparison: controller.NewComparisonController(s.comparison),
		activity:   controller.NewActivityController(s.activity),
		slide:      controller.NewSlideController(s.slide),
		reviewer:   controller.NewReviewerController(s.reviewer),
		ai:         controller.NewAIController(s.ai, s.perplexity, cfg.Server.Mode),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 调研锁在无Redis时退化为无锁，不阻止启动
		logger.Log.Warn("Redis unavailable, generation locks disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, cfg, db)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("silabo-pipeline", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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
