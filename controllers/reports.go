package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lostfound-hub/models"
	"lostfound-hub/utils"
)

// ReportLostItem handles POST /api/lost.
func ReportLostItem(c *gin.Context) {
	submitReport(c, models.StatusLost, "Lost item reported successfully")
}

// ReportFoundItem handles POST /api/found.
func ReportFoundItem(c *gin.Context) {
	submitReport(c, models.StatusFound, "Found item reported successfully")
}

func submitReport(c *gin.Context, status, message string) {
	var input models.ReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if ok, fieldErrors := utils.ValidateReport(input, status); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Failed", "details": fieldErrors})
		return
	}

	submitterID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, err := reportService.CreateReport(ctx, input, status, submitterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message, "id": id})
}
