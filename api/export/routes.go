package export

import (
	"github.com/gin-gonic/gin"
	"github.com/marginote/annotator-api/api/types"
)

// RegisterRoutes sets up the export and import routes on a per-media group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/export/:format", ExportAnnotations(deps))
	router.POST("/import", ImportAnnotations(deps))
}
