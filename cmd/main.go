package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Shibo14/ielts-mock/config"
	"github.com/Shibo14/ielts-mock/database"
	_ "github.com/Shibo14/ielts-mock/docs" // Swagger docs
	adminctrl "github.com/Shibo14/ielts-mock/internal/controller/admin"
	authctrl "github.com/Shibo14/ielts-mock/internal/controller/auth"
	userctrl "github.com/Shibo14/ielts-mock/internal/controller/user"
	"github.com/Shibo14/ielts-mock/internal/logger"
	"github.com/Shibo14/ielts-mock/internal/middleware"
	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/internal/repository"
	"github.com/Shibo14/ielts-mock/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title IELTS Mock Exam API
// @version 1.0
// @description API for administering timed IELTS-style listening/reading mock tests, recording answers and converting raw scores into band scores.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewSubmissionRepository,
			repository.NewAnswerRepository,
		),

		// Services layer
		fx.Provide(
			service.NewGradingService,
			service.NewBandScoreService,
			service.NewAuthService,
			service.NewUserTestService,
			service.NewAdminTestService,
			service.NewSubmissionService,
		),

		// API controllers layer
		fx.Provide(
			authctrl.NewAuthController,
			userctrl.NewUserTestController,
			userctrl.NewSubmissionController,
			adminctrl.NewAdminTestController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
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

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authController *authctrl.AuthController,
	userTestController *userctrl.UserTestController,
	submissionController *userctrl.SubmissionController,
	adminTestController *adminctrl.AdminTestController,
) {
	api := router.Group("/api/v1")
	api.POST("/auth/login", authController.Login)

	// Everything below requires an authenticated user.
	authed := api.Group("", middleware.Auth(cfg))
	{
		authed.GET("/tests", userTestController.GetAllTests)
		authed.GET("/tests/:test_id", userTestController.GetTestDetails)
		authed.GET("/audio/:filename", userTestController.ServeAudio)

		authed.POST("/tests/:test_id/submissions", submissionController.StartSubmission)
		authed.POST("/submissions/:submission_id/answers", submissionController.SubmitAnswer)
		authed.POST("/submissions/:submission_id/finish", submissionController.FinishSubmission)
		authed.GET("/submissions/:submission_id/result", submissionController.GetSubmissionResult)
	}

	adminGroup := api.Group("/admin", middleware.Auth(cfg), middleware.RequireAdmin())
	{
		adminGroup.POST("/tests", adminTestController.CreateTest)
		adminGroup.GET("/tests", adminTestController.ListTests)
		adminGroup.POST("/tests/:test_id/questions/import", adminTestController.ImportQuestions)
		adminGroup.GET("/results", adminTestController.ListResults)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("IELTS mock exam server starting on port %s", cfg.Server.Port)
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
		&model.Center{},
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.Submission{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func SeedDB(db *gorm.DB, cfg *config.Config) error {
	if !cfg.SeedOnStart {
		return nil
	}
	return database.Seed(db)
}
