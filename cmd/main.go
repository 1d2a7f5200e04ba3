package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/mindfulpath/backend/config"
	"github.com/mindfulpath/backend/database"
	_ "github.com/mindfulpath/backend/docs" // Swagger docs - auto-generated
	"github.com/mindfulpath/backend/internal/controller"
	"github.com/mindfulpath/backend/internal/logger"
	"github.com/mindfulpath/backend/internal/middleware"
	"github.com/mindfulpath/backend/internal/model"
	"github.com/mindfulpath/backend/internal/repository"
	"github.com/mindfulpath/backend/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title MindfulPath API
// @version 1.0
// @description Mental-health self-assessment backend: session auth, scored quiz submissions with history, and a streamed chat assistant.
// @host localhost:8080
// @BasePath /api
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuizResultRepository,
			repository.NewConversationRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewScoringService,
			service.NewAuthService,
			service.NewQuizService,
			service.NewResponder, // Gemini when configured, scripted otherwise
			service.NewChatService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewQuizController,
			controller.NewChatController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	r := gin.New()

	// Route gin's request log through zerolog.
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

	// Cookie-backed sessions carry the authenticated user id across requests.
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 7 * 24 * 60 * 60, HttpOnly: true})
	r.Use(sessions.Sessions("mindfulpath_session", store))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *controller.AuthController,
	quizCtrl *controller.QuizController,
	chatCtrl *controller.ChatController,
) {
	api := router.Group("/api")
	{
		api.POST("/register", authCtrl.Register)
		api.POST("/login", authCtrl.Login)

		// Quiz submission accepts anonymous callers; the session, when
		// present, links the result to its user.
		api.POST("/quiz", quizCtrl.Submit)

		api.GET("/conversations", chatCtrl.ListConversations)
		api.POST("/conversations", chatCtrl.CreateConversation)
		api.GET("/conversations/:id", chatCtrl.GetConversation)
		api.POST("/conversations/:id/messages", chatCtrl.PostMessage)

		protected := api.Group("", middleware.RequireAuth())
		{
			protected.POST("/logout", authCtrl.Logout)
			protected.GET("/user", authCtrl.Me)
			protected.GET("/quiz/history", quizCtrl.History)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("MindfulPath API server starting on port %s", cfg.Server.Port)
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
		&model.QuizResult{},
		&model.Conversation{},
		&model.Message{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
