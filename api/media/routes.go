package media

import (
	"github.com/gin-gonic/gin"
	"github.com/marginote/annotator-api/api/types"
)

// RegisterRoutes sets up the media registry routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/resolve", ResolveMedia(deps))
	router.GET("/:mediaId/info", GetMediaInfo(deps))
	router.GET("/:mediaId/file", ServeMediaFile(deps))
}
