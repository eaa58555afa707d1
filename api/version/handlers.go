package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
// @Summary      Service info
// @Tags         version
// @Produce      json
// @Success      200 {object} object{name=string,version=string,description=string,status=string} "Service info"
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Annotator API",
			"version":     "1.0.0",
			"description": "Local-first annotation engine for time-based media",
			"status":      "running",
		})
	}
}
