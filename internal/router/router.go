package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/authz"
	"taskboard-api/internal/client"
	"taskboard-api/internal/handler"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/service"
)

// Config holds the dependencies the HTTP surface is built from
type Config struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	BasePath    string
	FrontendURL string

	Tokens       *auth.TokenManager
	Hasher       service.CodeHasher
	GenerateCode func() (string, error)
	Auth         service.AuthConfig

	EmailClient  client.EmailClient
	GitHubClient client.GitHubClient

	// Guard is built from DB when nil
	Guard authz.Guard
	// Hub serves /ws; the route is skipped when nil
	Hub handler.RealtimeHub
	// Async runs mail delivery; service.GoAsync when nil
	Async service.AsyncRunner
}

// Setup wires repositories, services and handlers into a gin engine
func Setup(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.EmailClient == nil {
		cfg.EmailClient = client.NewNoOpEmailClient(logger)
	}
	if cfg.GenerateCode == nil {
		cfg.GenerateCode = auth.GenerateCode
	}
	if cfg.Async == nil {
		cfg.Async = service.GoAsync(logger)
	}

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	cardRepo := repository.NewCardRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	invitationRepo := repository.NewInvitationRepository(cfg.DB)
	attachmentRepo := repository.NewGitHubAttachmentRepository(cfg.DB)
	repoCache := repository.NewGitHubRepoRepository(cfg.DB)

	guard := cfg.Guard
	if guard == nil {
		guard = authz.NewGuard(boardRepo, cardRepo, taskRepo, invitationRepo)
	}

	// Initialize services
	authService := service.NewAuthService(
		userRepo, cfg.Tokens, cfg.Hasher, cfg.GenerateCode,
		cfg.EmailClient, cfg.Auth, cfg.Async, logger,
	)
	boardService := service.NewBoardService(boardRepo, guard, cfg.Metrics, logger)
	cardService := service.NewCardService(cardRepo, guard, cfg.Metrics, logger)
	taskService := service.NewTaskService(taskRepo, guard, cfg.Metrics, logger)
	invitationService := service.NewInvitationService(
		invitationRepo, userRepo, guard, cfg.EmailClient,
		cfg.FrontendURL, cfg.Async, cfg.Metrics, logger,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	boardHandler := handler.NewBoardHandler(boardService, logger)
	cardHandler := handler.NewCardHandler(cardService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	invitationHandler := handler.NewInvitationHandler(invitationService, logger)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	var githubHandler *handler.GitHubHandler
	if cfg.GitHubClient != nil {
		githubService := service.NewGitHubService(userRepo, repoCache, attachmentRepo, guard, cfg.GitHubClient, logger)
		githubHandler = handler.NewGitHubHandler(githubService, logger)
	}

	// Health and metrics at the root for probes and scrapers
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	basePath := strings.TrimRight(cfg.BasePath, "/")
	r.GET(basePath+"/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group(basePath)
	{
		if basePath != "" {
			api.GET("/health", healthHandler.Health)
			api.GET("/ready", healthHandler.Ready)
			api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		}

		if cfg.Hub != nil {
			wsHandler := handler.NewWSHandler(cfg.Hub, cfg.Tokens, []string{cfg.FrontendURL}, logger)
			api.GET("/ws", wsHandler.Connect)
		}

		// Public auth routes
		public := api.Group("/auth")
		{
			public.POST("/signup", authHandler.Signup)
			public.POST("/signin", authHandler.Signin)
			public.POST("/resend-code", authHandler.ResendCode)
		}

		authenticated := api.Group("")
		authenticated.Use(middleware.AuthWithValidator(cfg.Tokens))
		{
			authenticated.GET("/auth/me", authHandler.Me)
			authenticated.PUT("/auth/profile", authHandler.UpdateProfile)
			authenticated.GET("/auth/:userId", authHandler.GetUser)

			boards := authenticated.Group("/boards")
			{
				boards.GET("", boardHandler.GetBoards)
				boards.POST("", boardHandler.CreateBoard)
				boards.GET("/invites", invitationHandler.ListPending)
				boards.GET("/sent-invites", invitationHandler.ListSent)
				boards.GET("/:boardId", boardHandler.GetBoard)
				boards.PUT("/:boardId", boardHandler.UpdateBoard)
				boards.DELETE("/:boardId", boardHandler.DeleteBoard)
				boards.DELETE("/:boardId/members/:memberId", boardHandler.RemoveMember)
				boards.POST("/:boardId/invite", invitationHandler.Invite)
				boards.POST("/:boardId/invite/accept", invitationHandler.Respond)

				cards := boards.Group("/:boardId/cards")
				{
					cards.GET("", cardHandler.GetCards)
					cards.POST("", cardHandler.CreateCard)
					cards.GET("/user/:userId", cardHandler.GetCardsByOwner)
					cards.GET("/:cardId", cardHandler.GetCard)
					cards.PUT("/:cardId", cardHandler.UpdateCard)
					cards.DELETE("/:cardId", cardHandler.DeleteCard)

					tasks := cards.Group("/:cardId/tasks")
					{
						tasks.GET("", taskHandler.GetTasks)
						tasks.POST("", taskHandler.CreateTask)
						tasks.GET("/:taskId", taskHandler.GetTask)
						tasks.PUT("/:taskId", taskHandler.UpdateTask)
						tasks.DELETE("/:taskId", taskHandler.DeleteTask)
						tasks.PUT("/:taskId/move", taskHandler.MoveTask)
						tasks.GET("/:taskId/assign", taskHandler.GetAssignments)
						tasks.POST("/:taskId/assign", taskHandler.AssignTask)
						tasks.DELETE("/:taskId/assign/:memberId", taskHandler.UnassignTask)
					}
				}
			}

			if githubHandler != nil {
				github := authenticated.Group("/github")
				{
					github.GET("/callback", githubHandler.Callback)
					github.GET("/check-connection", githubHandler.CheckConnection)
					github.POST("/disconnect", githubHandler.Disconnect)
					github.GET("/repositories", githubHandler.ListRepositories)
					github.GET("/repositories/:repositoryId/github-info", githubHandler.GetRepositoryInfo)

					attachments := github.Group("/boards/:boardId/cards/:cardId/tasks/:taskId")
					{
						attachments.POST("/github-attach", githubHandler.Attach)
						attachments.GET("/github-attachments", githubHandler.ListAttachments)
						attachments.DELETE("/github-attachments/:attachmentId", githubHandler.DeleteAttachment)
					}
				}
			}
		}
	}

	return r
}
