package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"hydro-intrinsic/internal/api/handlers"
	"hydro-intrinsic/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	live := handlers.NewLiveFeedHandler()
	defer live.Close()

	optimiseHandler := handlers.NewOptimiseHandler(live)
	plantHandler := handlers.NewPlantHandler()
	rankHandler := handlers.NewRankHandler()
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/optimise", optimiseHandler.RunOptimise)
		api.GET("/optimise/:id/ledger", optimiseHandler.GetLedger)

		api.GET("/plants", plantHandler.ListPlants)
		api.POST("/rank", rankHandler.RankSeries)
		api.GET("/strategies", strategyHandler.ListStrategies)

		api.GET("/ws", func(c *gin.Context) { live.Serve(c) })
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	srv := &http.Server{Addr: addr, Handler: router}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
