package annotations

import (
	"github.com/gin-gonic/gin"
	"github.com/marginote/annotator-api/api/types"
)

// RegisterRoutes sets up the annotation routes on a per-media group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/annotations", CreateAnnotation(deps))
	router.GET("/annotations", GetAnnotations(deps))
	router.GET("/annotations/at/:timeMs", GetAnnotationsAtTime(deps))
	router.GET("/annotations/:id", GetAnnotation(deps))
	router.PUT("/annotations/:id", UpdateAnnotation(deps))
	router.DELETE("/annotations/:id", DeleteAnnotation(deps))
}
