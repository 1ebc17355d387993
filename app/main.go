package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"madrasa/config"
	"madrasa/delivery"
	"madrasa/domain"
	"madrasa/middleware"
	"madrasa/repository"
	"madrasa/service"
	"madrasa/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	sessionCookieTTL = 24 * time.Hour
	cleanupInterval  = 5 * time.Minute
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}
	utils.InitLogger(cfg.Env)

	// Register custom validators
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}

	db, err := config.BootDB()
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	// Rate limit state: shared Redis store when an address is configured,
	// otherwise process-local memory (single-instance deployments only).
	var limitStore domain.RateLimitStore
	if cfg.RedisAddr != "" {
		redisClient, err := config.InitRedisDB(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("failed to connect to Redis: ", err)
		}
		limitStore = repository.NewRedisRateLimitStore(redisClient)
		log.Print("Rate limiting backed by ", utils.ColorText("Redis", utils.Green))
	} else {
		limitStore = repository.NewMemoryRateLimitStore()
		log.Print("Rate limiting backed by ", utils.ColorText("in-process memory", utils.Yellow),
			" (state is per instance and lost on restart)")
	}

	// Init repositories
	otpRepo := repository.NewOTPRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	newsRepo := repository.NewNewsRepository(db)

	// OTP delivery: log-only unless SMTP is explicitly configured.
	var notifier domain.Notifier
	if os.Getenv("SMTP_HOST") != "" {
		notifier = utils.NewSMTPNotifier()
	} else {
		notifier = utils.NewLogNotifier()
	}

	// Init services
	authService := service.NewAuthService(otpRepo, sessionRepo, notifier, cfg.AdminEmails)
	limiter := service.NewRateLimitingService(limitStore, cfg.RateLimitWhitelist)
	courseService := service.NewCourseService(courseRepo)
	studentService := service.NewStudentService(studentRepo)
	meetingService := service.NewMeetingService(meetingRepo, courseRepo)
	newsService := service.NewNewsService(newsRepo)

	tokens := utils.NewSessionTokenManager(cfg.JWTSecret, sessionCookieTTL)

	// Background hygiene loops
	rootCtx, stopLoops := context.WithCancel(context.Background())
	defer stopLoops()
	limiter.StartSweepLoop(rootCtx)
	service.StartCleanupLoop(rootCtx, authService, cleanupInterval)

	// Init Gin
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	app := gin.New()
	config.InitMiddleware(app)
	app.Use(middleware.RateLimiter(limiter))

	delivery.NewAuthHandler(app, authService, tokens, cfg.Env)
	delivery.NewCourseHandler(app, courseService, tokens, authService)
	delivery.NewStudentHandler(app, studentService, tokens, authService)
	delivery.NewMeetingHandler(app, meetingService, tokens, authService)
	delivery.NewNewsHandler(app, newsService, tokens, authService)

	srvAddr := ":" + cfg.Port
	srv := &http.Server{
		Addr:           srvAddr,
		Handler:        app,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("Server running at http://localhost%s", srvAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopLoops()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
