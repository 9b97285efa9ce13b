package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	boardHTTP "adboard/internal/controller/http"
	"adboard/internal/repo/persistent"
	"adboard/internal/usecase"
	"adboard/pkg/config"
	"adboard/pkg/jwt"
	"adboard/pkg/logger"
	"adboard/pkg/middleware"
	"adboard/pkg/queue"
	"adboard/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "adboard/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	listingRepo := persistent.NewListingRepository(db)
	categoryRepo := persistent.NewCategoryRepository(db)
	conversationRepo := persistent.NewConversationRepository(db)
	reportRepo := persistent.NewReportRepository(db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, log)
	listingUseCase := usecase.NewListingUseCase(listingRepo, userRepo, categoryRepo, s3Client, cfg.ListingTTL(), log)
	moderationUseCase := usecase.NewModerationUseCase(listingRepo, redisClient, queueClient, log)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo)
	conversationUseCase := usecase.NewConversationUseCase(conversationRepo, listingRepo, queueClient, log)
	reportUseCase := usecase.NewReportUseCase(reportRepo, listingRepo)

	// Initialize HTTP handlers
	authHandler := boardHTTP.NewAuthHandler(authUseCase, log)
	listingHandler := boardHTTP.NewListingHandler(listingUseCase, log)
	moderationHandler := boardHTTP.NewModerationHandler(moderationUseCase, log)
	categoryHandler := boardHTTP.NewCategoryHandler(categoryUseCase, log)
	conversationHandler := boardHTTP.NewConversationHandler(conversationUseCase, log)
	reportHandler := boardHTTP.NewReportHandler(reportUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes. Browsing and single-listing reads work without a
	// token; a token, when sent, still resolves the actor so owners see
	// their hidden listings.
	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.GET("/categories", categoryHandler.ListCategories)
		public.GET("/listings", middleware.OptionalAuthMiddleware(jwtService), listingHandler.BrowseListings)
		public.GET("/listings/:id", middleware.OptionalAuthMiddleware(jwtService), listingHandler.GetListing)
	}

	// Authenticated routes
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		api.POST("/listings", listingHandler.CreateListing)
		api.GET("/listings/mine", listingHandler.MyListings)
		api.PUT("/listings/:id", listingHandler.UpdateListing)
		api.DELETE("/listings/:id", listingHandler.DeleteListing)
		api.PUT("/listings/:id/deactivate", moderationHandler.DeactivateListing)
		api.POST("/listings/:id/favorite", listingHandler.ToggleFavorite)
		api.GET("/favorites", listingHandler.GetFavorites)
		api.POST("/listings/:id/report", reportHandler.ReportListing)

		api.POST("/listings/:id/conversations", conversationHandler.StartConversation)
		api.GET("/conversations", conversationHandler.ListConversations)
		api.GET("/conversations/:id/messages", conversationHandler.ListMessages)
		api.POST("/conversations/:id/messages", conversationHandler.SendMessage)
	}

	// Administrator-only routes
	admin := api.Group("")
	admin.Use(middleware.AdminOnly())

	{
		admin.PUT("/listings/:id/approve", moderationHandler.ApproveListing)
		admin.PUT("/listings/:id/reject", moderationHandler.RejectListing)
		admin.PUT("/listings/:id/activate", moderationHandler.ActivateListing)
		admin.GET("/moderation/pending", moderationHandler.PendingListings)
		admin.GET("/moderation/reports", reportHandler.ListOpenReports)
		admin.PUT("/moderation/reports/:id/resolve", reportHandler.ResolveReport)

		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Adboard service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down adboard service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Adboard service exited")
}
