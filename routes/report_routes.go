package routes

import (
	"github.com/gin-gonic/gin"

	"lostfound-hub/controllers"
	"lostfound-hub/middleware"
)

func SetupReportRoutes(r *gin.Engine) {
	// Submitting a report needs a verified identity
	r.POST("/api/lost", middlewares.AuthMiddleware(), controllers.ReportLostItem)
	r.POST("/api/found", middlewares.AuthMiddleware(), controllers.ReportFoundItem)
}

func SetupItemRoutes(r *gin.Engine) {
	// Browsing is public
	r.GET("/api/items", controllers.GetItems)
	r.GET("/api/items/:id", controllers.GetItemByID)
}
