package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"rsu-backtest/internal/api/handlers"
	"rsu-backtest/internal/api/middleware"
	"rsu-backtest/internal/data"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	// One cached price source per process; identical windows across requests
	// hit the chart API once.
	prices := data.NewCache(data.NewYahooClient(os.Getenv("PRICE_API_URL"), log))
	analysisHandler := handlers.NewAnalysisHandler(prices, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/analysis", analysisHandler.RunAnalysis)
		api.POST("/grants", analysisHandler.ResolveGrants)
		api.GET("/strategies", handlers.ListStrategies)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
