package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/adapter/http/handler"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/adapter/http/middleware"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/adapter/repository/gormrepo"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/repository"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/infrastructure/metrics"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/usecase"
)

// Options holds the dependencies of the HTTP router
type Options struct {
	// DB enables the prediction history when set
	DB          *gorm.DB
	RedisClient *redis.Client
	Inference   *usecase.InferenceService
	Metrics     *metrics.Metrics
	Logger      *zap.Logger

	// MalformedRequestStatus is returned by POST /predict for bodies that are not a JSON object
	MalformedRequestStatus int
}

// Setup creates and configures the Gin router
func Setup(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(m))

	// Health endpoints
	healthHandler := handler.NewHealthHandler(opts.DB, opts.RedisClient, opts.Inference)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Initialize repositories
	var predRepo repository.PredictionRepository
	if opts.DB != nil {
		predRepo = gormrepo.NewPredictionRepository(opts.DB)
	}

	// Initialize usecases
	sentimentUC := usecase.NewSentimentUsecase(opts.Inference, predRepo, m, logger)
	predictionUC := usecase.NewPredictionUsecase(predRepo)
	reviewUC := usecase.NewReviewUsecase(opts.Inference, predRepo, m, logger)

	// Initialize handlers
	predictHandler := handler.NewPredictHandler(sentimentUC, opts.MalformedRequestStatus, logger)
	modelHandler := handler.NewModelHandler(opts.Inference, logger)
	predictionHandler := handler.NewPredictionHandler(predictionUC)
	reviewHandler := handler.NewReviewHandler(reviewUC)

	// Inference
	router.POST("/predict", predictHandler.Predict)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Model administration
		model := v1.Group("/model")
		{
			model.GET("", modelHandler.GetModel)
			model.POST("/reload", modelHandler.ReloadModel)
		}

		// Prediction history
		predictions := v1.Group("/predictions")
		{
			predictions.GET("", predictionHandler.ListPredictions)
			predictions.GET("/stats", predictionHandler.GetStats)
			predictions.GET("/:id", predictionHandler.GetPrediction)
		}

		// Movie reviews
		v1.POST("/reviews", reviewHandler.SubmitReview)
	}

	return router
}
