package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ressKim-io/fraudlens/internal/adapter/http/handler"
	"github.com/ressKim-io/fraudlens/internal/adapter/http/middleware"
	"github.com/ressKim-io/fraudlens/internal/usecase"
)

// Setup creates and configures the Gin router
func Setup(predictionUC usecase.PredictionUsecase, maxBodyBytes int64, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Tracing())
	router.Use(middleware.Metrics())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(predictionUC)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/keep-alive", healthHandler.KeepAlive)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Prediction routes
	predictionHandler := handler.NewPredictionHandler(predictionUC, maxBodyBytes)
	router.POST("/predict", predictionHandler.Predict)
	router.POST("/ai-prediction", predictionHandler.AIPrediction)

	return router
}
