package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/trnhan241/examguard/config"
	"github.com/trnhan241/examguard/database"
	_ "github.com/trnhan241/examguard/docs" // Swagger docs - auto-generated
	authctrl "github.com/trnhan241/examguard/internal/controller/auth"
	examinerctrl "github.com/trnhan241/examguard/internal/controller/examiner"
	studentctrl "github.com/trnhan241/examguard/internal/controller/student"
	"github.com/trnhan241/examguard/internal/logger"
	"github.com/trnhan241/examguard/internal/middleware"
	"github.com/trnhan241/examguard/internal/model"
	"github.com/trnhan241/examguard/internal/repository"
	"github.com/trnhan241/examguard/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title ExamGuard API
// @version 1.0
// @description Timed MCQ exam service with single-device sessions and server-verified scoring.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewSessionRepository,
			repository.NewExamRepository,
			repository.NewAttemptRepository,
			repository.NewResponseRepository,
			repository.NewResultRepository,
		),

		fx.Provide(
			func(sessionRepo repository.SessionRepository, cfg *config.Config) service.SessionService {
				return service.NewSessionService(sessionRepo, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)
			},
			func(userRepo repository.UserRepository, sessions service.SessionService, cfg *config.Config) service.AuthService {
				return service.NewAuthService(userRepo, sessions, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
			},
			service.NewExamService,
			service.NewAttemptService,
			service.NewResponseService,
			service.NewScoringService,
			service.NewLeaderboardService,
		),

		fx.Provide(
			authctrl.NewAuthController,
			examinerctrl.NewExaminerController,
			studentctrl.NewStudentController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessions service.SessionService,
	authCtrl *authctrl.AuthController,
	examinerCtrl *examinerctrl.ExaminerController,
	studentCtrl *studentctrl.StudentController,
) {
	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/logout", middleware.RequireAuth(cfg.Auth.JWTSecret), authCtrl.Logout)
		authGroup.GET("/profile", middleware.RequireAuth(cfg.Auth.JWTSecret), authCtrl.Profile)
	}

	examinerGroup := api.Group("/examiner")
	examinerGroup.Use(middleware.RequireAuth(cfg.Auth.JWTSecret), middleware.RequireExaminer())
	{
		examinerGroup.POST("/exams", examinerCtrl.CreateExam)
		examinerGroup.GET("/exams", examinerCtrl.ListMyExams)
		examinerGroup.GET("/exams/:exam_id", examinerCtrl.GetExamPreview)
		examinerGroup.POST("/exams/:exam_id/publish", examinerCtrl.PublishExam)
		examinerGroup.GET("/exams/:exam_id/leaderboard", examinerCtrl.GetLeaderboard)
		examinerGroup.GET("/exams/:exam_id/analytics", examinerCtrl.GetAnalytics)
	}

	// Exam-taking routes also verify the request comes from the session's device.
	studentGroup := api.Group("")
	studentGroup.Use(
		middleware.RequireAuth(cfg.Auth.JWTSecret),
		middleware.RequireStudent(),
		middleware.ValidateDevice(sessions),
	)
	{
		studentGroup.GET("/exams", studentCtrl.ListAvailableExams)
		studentGroup.POST("/exams/:exam_id/attempts", studentCtrl.StartAttempt)
		studentGroup.GET("/exams/:exam_id/result", studentCtrl.GetExamResult)
		studentGroup.POST("/attempts/:attempt_id/answers", studentCtrl.RecordAnswer)
		studentGroup.POST("/attempts/:attempt_id/submit", studentCtrl.SubmitAttempt)
		studentGroup.GET("/attempts/:attempt_id/review", studentCtrl.ReviewAttempt)
		studentGroup.GET("/results", studentCtrl.MyResults)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("ExamGuard API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Exam{},
		&model.Question{},
		&model.Attempt{},
		&model.Response{},
		&model.Result{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	// Partial unique index keeping at most one active session per user.
	// Not expressible through gorm struct tags.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS uniq_user_sessions_active ON sessions (user_id) WHERE is_active",
	).Error; err != nil {
		log.Error().Err(err).Msg("Session index creation failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
