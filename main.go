package main

import (
	"context"
	"log"
	"time"

	"learning-service/internal/certificate"
	"learning-service/internal/config"
	"learning-service/internal/db"
	"learning-service/internal/event"
	"learning-service/internal/handlers"
	"learning-service/internal/mailer"
	"learning-service/internal/middleware"
	"learning-service/internal/models"
	"learning-service/internal/repository"
	"learning-service/internal/service"
	"learning-service/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.New()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	if err := db.InitMongo(cfg.MongoURI, logger); err != nil {
		logger.Fatal("mongo connection failed", zap.Error(err))
	}
	defer db.DisconnectMongo(logger)
	database := db.Client.Database(cfg.MongoDatabase)

	redisClient := db.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)

	var publisher service.Publisher
	if cfg.RabbitURI != "" {
		eventPublisher, err := event.NewEventPublisher(cfg.RabbitURI, cfg.RabbitExchange, logger)
		if err != nil {
			logger.Fatal("rabbitmq connection failed", zap.Error(err))
		}
		defer eventPublisher.Close()
		publisher = eventPublisher
	} else {
		logger.Warn("RabbitMQ not configured, events will not be published")
	}

	objectStore, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, logger)
	if err != nil {
		logger.Fatal("object storage setup failed", zap.Error(err))
	}
	bucketCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = objectStore.EnsureBuckets(bucketCtx, cfg.SubmissionBucket, cfg.ImageBucket, cfg.CertificateBucket)
	cancel()
	if err != nil {
		logger.Fatal("bucket bootstrap failed", zap.Error(err))
	}

	emails := mailer.NewSendgridMailer(cfg.SendgridKey, cfg.EmailFrom, cfg.AppName, logger)

	// Repositories
	userRepo := repository.NewUserRepository(database)
	courseRepo := repository.NewCourseRepository(database)
	examRepo := repository.NewExamRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	companyRepo := repository.NewCompanyRepository(database)
	resetCodeRepo := repository.NewResetCodeRepository(redisClient)

	// Services
	notificationService := service.NewNotificationService(notificationRepo, publisher, logger)
	authService := service.NewAuthService(userRepo, resetCodeRepo, emails, cfg.JWTSecret,
		time.Duration(cfg.JWTExpiryHours)*time.Hour, logger)
	userService := service.NewUserService(userRepo, companyRepo, emails, logger)
	courseService := service.NewCourseService(courseRepo, examRepo)
	progressService := service.NewProgressService(userRepo, courseRepo, examRepo, objectStore,
		notificationService, cfg.SubmissionBucket, logger)
	competencyService := service.NewCompetencyService(userRepo, courseRepo)
	managerService := service.NewManagerService(userRepo, courseRepo)
	homeService := service.NewHomeService(userRepo, courseRepo)
	profileService := service.NewProfileService(userRepo, courseRepo, objectStore, cfg.ImageBucket, logger)
	calendarService := service.NewCalendarService(userRepo, courseRepo)
	companyService := service.NewCompanyService(companyRepo, userRepo, logger)
	certificateService := service.NewCertificateService(userRepo, courseRepo,
		certificate.NewRenderer(cfg.CertificateFont), objectStore, cfg.CertificateBucket, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger)
	progressHandler := handlers.NewProgressHandler(progressService, competencyService, logger)
	managerHandler := handlers.NewManagerHandler(managerService, logger)
	homeHandler := handlers.NewHomeHandler(homeService, logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger)
	calendarHandler := handlers.NewCalendarHandler(calendarService, logger)
	companyHandler := handlers.NewCompanyHandler(companyService, logger)
	certificateHandler := handlers.NewCertificateHandler(certificateService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/resend-code", authHandler.ResendCode)
		auth.POST("/check-code", authHandler.CheckCode)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	api := r.Group("/api")
	api.Use(middleware.Auth(authService))
	{
		api.POST("/auth/initial-password", authHandler.SetInitialPassword)

		api.GET("/home/progress", homeHandler.PersonalProgress)
		api.GET("/home/courses", homeHandler.CoursesInProgress)
		api.GET("/competencies", progressHandler.Competencies)

		api.GET("/courses", courseHandler.List)
		api.GET("/courses/:id", courseHandler.Get)
		api.GET("/courses/:id/lessons/:contentId", courseHandler.GetLesson)
		api.POST("/courses/:id/content/:contentId/complete", progressHandler.MarkContentComplete)
		api.POST("/courses/:id/content/:contentId/quiz", progressHandler.SubmitQuiz)
		api.POST("/courses/:id/content/:contentId/submission", progressHandler.SubmitPDF)
		api.POST("/courses/:id/exam", progressHandler.SubmitExam)

		api.GET("/profile", profileHandler.Get)
		api.PUT("/profile", profileHandler.Update)

		api.POST("/calendar/reminders", calendarHandler.AddReminder)
		api.GET("/calendar/events", calendarHandler.Events)
		api.GET("/calendar/week", calendarHandler.UpcomingWeek)

		api.GET("/certificates/:id", certificateHandler.Download)
		api.POST("/certificates/:id", certificateHandler.Store)

		api.GET("/notifications", notificationHandler.List)
		api.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	}

	manager := api.Group("")
	manager.Use(middleware.RequireRole(models.RoleManager, models.RoleAdmin))
	{
		manager.POST("/enrollments", progressHandler.Enroll)
		manager.GET("/manager/dashboard", managerHandler.Dashboard)
		manager.GET("/manager/employees", managerHandler.Employees)
		manager.GET("/manager/employees/:id", managerHandler.EmployeeDetail)
		manager.POST("/users", userHandler.Create)
	}

	admin := api.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/courses", courseHandler.Create)
		admin.DELETE("/courses/:id", courseHandler.Delete)
		admin.POST("/courses/:id/exams", courseHandler.CreateExam)

		admin.POST("/companies", companyHandler.Create)
		admin.GET("/companies", companyHandler.List)
		admin.DELETE("/companies/:id", companyHandler.Delete)
	}

	logger.Info("starting learning service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
