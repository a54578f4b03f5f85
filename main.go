package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"lostfound-hub/config"
	"lostfound-hub/controllers"
	"lostfound-hub/database"
	"lostfound-hub/routes"
)

func main() {
	logger := config.GetLogger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file loaded: ", err)
	}

	db.InitDB()
	defer db.DisconnectDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := db.EnsureIndexes(ctx)
	cancel()
	if err != nil {
		logger.Fatal("Failed to ensure indexes: ", err)
	}

	controllers.InitServices(db.LostCollection, db.FoundCollection)

	// Re-assert indexes daily; creating an existing index is a no-op, and
	// this restores them on databases rebuilt out-of-band.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.EnsureIndexes(ctx); err != nil {
			logger.WithField("job", "ensure_indexes").Error(err)
		}
	}); err != nil {
		logger.Fatal("Failed to schedule index job: ", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("Starting server on :", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server: ", err)
	}
}
