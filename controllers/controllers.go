package controllers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"lostfound-hub/services"
)

var (
	reportService *services.ReportService
	feedService   *services.FeedService
)

// InitServices wires the handlers to the report collections. Called once
// from main after the database connection is up.
func InitServices(lost, found *mongo.Collection) {
	reportService = services.NewReportService(lost, found)
	feedService = services.NewFeedService(
		services.NewMongoSource(lost),
		services.NewMongoSource(found),
	)
}
