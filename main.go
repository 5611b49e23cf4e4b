package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketplace-backend/config"
	"marketplace-backend/controllers"
	"marketplace-backend/database"
	"marketplace-backend/kafka"
	"marketplace-backend/logger"
	"marketplace-backend/middleware"
	"marketplace-backend/models"
	awspkg "marketplace-backend/pkg/aws"
	apperrors "marketplace-backend/pkg/errors"
	"marketplace-backend/repository"
	"marketplace-backend/routes"
	"marketplace-backend/services"
)

func main() {

	// Load environment configuration
	cfg := config.Load()

	logger.Initialize(cfg.Environment)
	defer zap.L().Sync()

	// Postgres holds users, refresh tokens and the order ledger
	pg, err := database.ConnectPostgres(cfg)
	if err != nil {
		zap.L().Fatal("failed to connect to postgres", zap.Error(err))
	}
	if err := models.Migrate(pg); err != nil {
		zap.L().Fatal("failed to run migrations", zap.Error(err))
	}

	// Mongo holds the catalog collections
	mongoDB, closeMongo, err := database.ConnectMongo(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		zap.L().Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer closeMongo()

	// Redis holds carts and the notification slot
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zap.L().Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.CheckoutTopic, zap.L())
	defer producer.Close()

	awsCfg, err := awspkg.LoadAWSConfig(context.Background())
	if err != nil {
		zap.L().Fatal("failed to load AWS config", zap.Error(err))
	}
	s3Client := awspkg.NewS3Client(awsCfg)

	// Repositories
	userRepo := repository.NewUserRepository(pg)
	orderRepo := repository.NewGormOrderRepository(pg)
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL, zap.L())
	noticeRepo := repository.NewNotificationRepository(redisClient, cfg.NotificationTTL)
	serviceRepo := repository.NewMongoServiceRepository(mongoDB)
	reviewRepo := repository.NewMongoReviewRepository(mongoDB)
	profileRepo := repository.NewMongoProfileRepository(mongoDB)
	messageRepo := repository.NewMongoMessageRepository(mongoDB)
	imageStore := repository.NewS3ImageStore(s3Client, cfg.ImageBucket)

	// Services
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	sessionService := services.NewSessionService(tokenService)
	authService := services.NewAuthService(userRepo, tokenService, profileRepo)
	notifier := services.NewNotificationService(noticeRepo, zap.L())
	cartService := services.NewCartService(cartRepo, notifier)
	catalogService := services.NewCatalogService(serviceRepo, zap.L())
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, notifier, producer, zap.L())
	orderService := services.NewOrderService(orderRepo, serviceRepo, notifier, zap.L())
	reviewService := services.NewReviewService(reviewRepo, orderRepo, notifier)
	developerService := services.NewDeveloperService(profileRepo, serviceRepo, reviewRepo, zap.L())
	messageService := services.NewMessageService(messageRepo, notifier)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(apperrors.ErrorMiddleware())

	routes.Register(router, sessionService, routes.Controllers{
		Auth:          controllers.NewAuthController(authService),
		Cart:          controllers.NewCartController(cartService, catalogService, checkoutService),
		Services:      controllers.NewServiceController(catalogService, imageStore),
		Orders:        controllers.NewOrderController(orderService),
		Developers:    controllers.NewDeveloperController(developerService, messageService),
		Reviews:       controllers.NewReviewController(reviewService),
		Messages:      controllers.NewMessageController(messageService),
		Notifications: controllers.NewNotificationController(notifier),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zap.L().Info("marketplace backend listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zap.L().Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Fatal("shutdown error", zap.Error(err))
	}
	zap.L().Info("server shutdown complete")
}
